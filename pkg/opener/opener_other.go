//go:build !windows

package opener

// Default returns nil: opening folders is only offered on Windows.
func Default() Opener {
	return nil
}
