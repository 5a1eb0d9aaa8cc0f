// Package output provides output formatting interfaces.
// This package produces human and machine-readable bills.
package output

import (
	"io"
	"sort"
	"sync"

	"energy-billing/core/types"
	"energy-billing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is the fixed-width printed receipt
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given bill
	Render(w io.Writer, bill *types.Bill) error
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeConfig, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// GetFormatter returns a formatter for a format type
func (r *Registry) GetFormatter(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render looks up the formatter and renders the bill with it
func (r *Registry) Render(w io.Writer, format Format, bill *types.Bill) error {
	f, ok := r.GetFormatter(format)
	if !ok {
		return errors.NotSupported("output format " + string(format))
	}
	return f.Render(w, bill)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry with the built-in formatters
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		_ = defaultRegistry.Register(NewReceiptFormatter())
		_ = defaultRegistry.Register(NewJSONFormatter())
		_ = defaultRegistry.Register(NewMarkdownFormatter())
	})
	return defaultRegistry
}
