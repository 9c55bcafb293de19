package form

import (
	"sync"
	"time"

	"leadcapture_frontend/internal/leads/validation"
	"leadcapture_frontend/platform/apperr"
)

type registryKey struct {
	session string
	variant string
}

// Registry owns one Form per (session, variant). Forms are created lazily and
// share nothing with each other.
type Registry struct {
	variants  map[string]validation.Variant
	validator Validator
	submitter Submitter
	opts      Options

	mu    sync.Mutex
	forms map[registryKey]*Form
}

// NewRegistry creates a registry over the given variants.
func NewRegistry(variants map[string]validation.Variant, val Validator, sub Submitter, opts Options) *Registry {
	return &Registry{
		variants:  variants,
		validator: val,
		submitter: sub,
		opts:      opts,
		forms:     make(map[registryKey]*Form),
	}
}

// Variant returns the configuration of a variant.
func (r *Registry) Variant(name string) (validation.Variant, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// Variants returns the sorted variant names.
func (r *Registry) Variants() []string {
	return validation.Names(r.variants)
}

// Get returns the form for session and variant, creating it on first use.
func (r *Registry) Get(session, variant string) (*Form, error) {
	v, ok := r.variants[variant]
	if !ok {
		return nil, apperr.NotFound("unknown form: " + variant)
	}

	key := registryKey{session: session, variant: variant}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[key]; ok {
		return f, nil
	}
	f := New(v, r.validator, r.submitter, r.opts)
	r.forms[key] = f
	return f, nil
}

// Len returns the number of live forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops forms untouched for longer than maxIdle and returns how many
// were removed. Forms with a submission in flight are kept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, f := range r.forms {
		if !f.idleSince(cutoff) {
			continue
		}
		f.Stop()
		delete(r.forms, key)
		removed++
	}
	return removed
}

// Close stops every pending reset timer and empties the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, f := range r.forms {
		f.Stop()
		delete(r.forms, key)
	}
}
