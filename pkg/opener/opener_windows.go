//go:build windows

package opener

// Default returns the Explorer opener.
func Default() Opener {
	return &Command{
		Name: "explorer.exe",
	}
}
