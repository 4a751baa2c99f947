package ui

import (
	"bytes"
	"testing"
)

func TestPipelinePhases(t *testing.T) {
	var buf bytes.Buffer
	p := NewPipelineWithOutput(ScrapePhases, &buf)

	if p.Current() != "" {
		t.Errorf("Expected no current phase, got %s", p.Current())
	}

	for _, expected := range ScrapePhases {
		bar := p.NextPhase(3)
		if bar == nil {
			t.Fatalf("Expected bar for phase %s", expected)
		}
		if bar.Phase() != expected || p.Current() != expected {
			t.Errorf("Expected phase %s, got %s", expected, bar.Phase())
		}
		bar.Increment()
		bar.Describe("working")
	}

	if bar := p.NextPhase(1); bar != nil {
		t.Errorf("Expected nil after last phase, got %s", bar.Phase())
	}
	p.Finish()

	p.PrintSummary("done")
	if !bytes.Contains(buf.Bytes(), []byte("done")) {
		t.Error("Expected summary in output")
	}
}

func TestIndeterminatePhase(t *testing.T) {
	var buf bytes.Buffer
	p := NewPipelineWithOutput([]Phase{PhaseFetching}, &buf)

	bar := p.NextPhase(Indeterminate)
	bar.Increment()
	bar.SetTotal(10)
	p.Finish()
}

func TestDisabledPipelineWritesNothing(t *testing.T) {
	p := NewDisabledPipeline(ScrapePhases)

	bar := p.NextPhase(5)
	if bar == nil {
		t.Fatal("Disabled pipeline should still hand out bars")
	}
	bar.Increment()
	p.Finish()
	p.PrintSummary("hidden")
}

func TestNilPipelineIsSafe(t *testing.T) {
	var p *Pipeline

	if bar := p.NextPhase(1); bar != nil {
		t.Error("Expected nil bar from nil pipeline")
	}
	var bar *ProgressBar
	bar.Increment()
	bar.Describe("x")
	bar.Finish()
	p.Finish()
	p.PrintSummary("x")
	p.Disable()
}
