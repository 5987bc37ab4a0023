// Package opener shows a directory in the native file browser where the
// platform supports it.
package opener

import (
	"context"
	"os/exec"
)

type Opener interface {
	Open(ctx context.Context, dir string) error
}

// Command opens directories by running an executable with the directory as
// its only argument.
type Command struct {
	Name string
}

func (c *Command) Open(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, c.Name, dir)

	if err := cmd.Start(); err != nil {
		return err
	}

	// explorer.exe exits with a non-zero code even on success
	go cmd.Wait()

	return nil
}
