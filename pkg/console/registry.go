// ABOUTME: Registry owns the console handles of one logical screen and the lock guarding them
// ABOUTME: Resolves the active handle (primary or alternate) and takes fresh buffer snapshots

package console

import "sync"

// Registry owns the native handles backing one screen and serializes every
// operation against them. Share it by pointer; all holders use the same lock.
type Registry struct {
	mu  sync.Mutex
	api API

	output          Handle
	alternate       Handle
	hasAlternate    bool
	alternateActive bool

	text textPolicy
}

// Option configures a Registry.
type Option func(*Registry)

// WithPlaceholder sets the text substituted for invalid UTF-8 input.
func WithPlaceholder(s string) Option {
	return func(r *Registry) { r.text.placeholder = s }
}

// WithStrictText makes WriteText return errors instead of substituting
// invalid input and swallowing native failures.
func WithStrictText(strict bool) Option {
	return func(r *Registry) { r.text.strict = strict }
}

// WithNormalize enables NFC normalisation before transcoding.
func WithNormalize(nfc bool) Option {
	return func(r *Registry) { r.text.normalize = nfc }
}

// NewRegistry returns a Registry issuing calls through api against output.
func NewRegistry(api API, output Handle, opts ...Option) *Registry {
	r := &Registry{
		api:    api,
		output: output,
		text:   textPolicy{placeholder: DefaultPlaceholder},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetAlternateHandle registers the screen buffer used in alternate mode.
func (r *Registry) SetAlternateHandle(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alternate = h
	r.hasAlternate = true
}

// SetAlternateActive records the alternate-screen mode. CurrentHandle
// follows it only once an alternate handle is registered.
func (r *Registry) SetAlternateActive(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alternateActive = on
}

// AlternateActive reports whether the alternate handle is selected.
func (r *Registry) AlternateActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.alternateActive
}

// CurrentHandle returns the handle for the active screen. Alternate mode
// without a registered alternate handle keeps returning the output handle.
func (r *Registry) CurrentHandle() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currentHandle()
}

// BufferInfoAndHandle returns a fresh snapshot together with the handle it
// was read from. Both are taken under one lock acquisition.
func (r *Registry) BufferInfoAndHandle() (BufferInfo, Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.currentHandle()
	return r.bufferInfo(h), h
}

// BufferInfoFromHandle returns a fresh snapshot of h.
func (r *Registry) BufferInfoFromHandle(h Handle) BufferInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bufferInfo(h)
}

// currentHandle must be called with mu held.
func (r *Registry) currentHandle() Handle {
	if r.alternateActive && r.hasAlternate {
		return r.alternate
	}
	return r.output
}

// bufferInfo must be called with mu held. A failed query leaves no usable
// snapshot, so it panics.
func (r *Registry) bufferInfo(h Handle) BufferInfo {
	var info BufferInfo
	if !Succeeded(r.api.GetConsoleScreenBufferInfo(h, &info)) {
		panic(&NativeError{Op: OpBufferInfo, Handle: h})
	}
	return info
}
