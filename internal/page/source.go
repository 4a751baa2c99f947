// Package page loads rendered documentation pages and exposes them as
// queryable element trees.
package page

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedTarget is returned for targets that are neither URLs nor files
var ErrUnsupportedTarget = errors.New("unsupported page target")

// Source yields a rendered page for a target
type Source interface {
	Load(ctx context.Context, target string) (*Document, error)
}

// Router dispatches http(s) targets to a Fetcher and everything else to a FileLoader
type Router struct {
	Fetcher *Fetcher
	Files   FileLoader
}

// NewRouter creates a Router around the given fetcher
func NewRouter(f *Fetcher) *Router {
	return &Router{Fetcher: f}
}

// Load implements Source
func (r *Router) Load(ctx context.Context, target string) (*Document, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("%w: empty target", ErrUnsupportedTarget)
	}

	if IsRemote(target) {
		if r.Fetcher == nil {
			return nil, fmt.Errorf("%w: no fetcher configured for %s", ErrUnsupportedTarget, target)
		}
		return r.Fetcher.Load(ctx, target)
	}

	path, ok := LocalPath(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTarget, target)
	}
	return r.Files.Load(ctx, path)
}

// Invalidate drops any cached copy of a remote target so the next Load fetches it
func (r *Router) Invalidate(target string) {
	if r == nil || !IsRemote(target) {
		return
	}
	r.Fetcher.Invalidate(strings.TrimSpace(target))
}

// LocalPath returns the filesystem path for a file target, stripping a
// file:// scheme. It reports false for targets with any other scheme.
func LocalPath(target string) (string, bool) {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "file://") {
		return strings.TrimPrefix(target, "file://"), true
	}
	if strings.Contains(target, "://") {
		return "", false
	}
	return target, true
}

// IsRemote reports whether target is an http or https URL
func IsRemote(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Origin returns scheme://host of an http(s) URL, or "" for anything else
func Origin(target string) string {
	if !IsRemote(target) {
		return ""
	}
	u, _ := url.Parse(target)
	return u.Scheme + "://" + u.Host
}
