package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage in the scrape pipeline
type Phase string

const (
	PhaseFetching   Phase = "Fetching"
	PhaseExtracting Phase = "Extracting"
	PhaseConverting Phase = "Converting"
	PhaseGenerating Phase = "Generating"
)

// ScrapePhases is the phase order of a full scrape run
var ScrapePhases = []Phase{PhaseFetching, PhaseExtracting, PhaseConverting, PhaseGenerating}

// Indeterminate is passed as total for phases whose amount of work is unknown
const Indeterminate = -1

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
	total int
}

// NewProgressBarWithOutput creates a progress bar for a phase.
// A total of Indeterminate renders a spinner.
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	}
	if total == Indeterminate {
		opts = append(opts, progressbar.OptionSpinnerType(14))
	} else {
		opts = append(opts,
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(true),
		)
	}

	return &ProgressBar{
		bar:   progressbar.NewOptions(total, opts...),
		phase: phase,
		total: total,
	}
}

// Phase returns the phase this bar tracks
func (pb *ProgressBar) Phase() Phase {
	if pb == nil {
		return ""
	}
	return pb.phase
}

// Increment increments the progress bar by 1
func (pb *ProgressBar) Increment() {
	if pb == nil {
		return
	}
	_ = pb.bar.Add(1)
}

// SetTotal updates the total count of the progress bar
func (pb *ProgressBar) SetTotal(total int) {
	if pb == nil {
		return
	}
	pb.total = total
	pb.bar.ChangeMax(total)
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	if pb == nil {
		return
	}
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() {
	if pb == nil {
		return
	}
	_ = pb.bar.Finish()
}

// Pipeline represents a multi-phase progress tracking system.
// A nil *Pipeline is valid and tracks nothing.
type Pipeline struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipelineWithOutput creates a new pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		output:  output,
	}
}

// NewDisabledPipeline creates a pipeline that renders nothing.
// Used when stdout carries a protocol (mcp) or a server log (serve).
func NewDisabledPipeline(phases []Phase) *Pipeline {
	p := NewPipelineWithOutput(phases, io.Discard)
	p.disabled = true
	return p
}

// Disable disables the progress bar output
func (p *Pipeline) Disable() {
	if p != nil {
		p.disabled = true
	}
}

// Current returns the active phase, or "" before the first phase
func (p *Pipeline) Current() Phase {
	if p == nil || p.current < 0 || p.current >= len(p.phases) {
		return ""
	}
	return p.phases[p.current]
}

// NextPhase finishes the active phase and starts the next one.
// It returns nil when all phases are done.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	if p == nil {
		return nil
	}
	p.bar.Finish()

	p.current++
	if p.current >= len(p.phases) {
		p.bar = nil
		return nil
	}

	output := p.output
	if p.disabled {
		output = io.Discard
	}
	p.bar = NewProgressBarWithOutput(p.phases[p.current], total, output)
	return p.bar
}

// Finish completes the active phase
func (p *Pipeline) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}

// PrintSummary prints a line after the bars are cleared
func (p *Pipeline) PrintSummary(message string) {
	if p != nil && !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
