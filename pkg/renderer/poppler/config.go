package poppler

import (
	"time"
)

type Option func(*Renderer)

// WithBinary sets the pdftoppm executable, looked up in PATH when not absolute.
func WithBinary(path string) Option {
	return func(r *Renderer) {
		r.binary = path
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = timeout
	}
}
