package session

import (
	"github.com/adrianliechti/cardsheet/pkg/layout"
)

// Observer receives the progress of a run. All calls happen on the
// goroutine running Process.
type Observer interface {
	// Layout is called once with the sheet geometry before the first file.
	Layout(params layout.Params)

	// Status is called before file index is processed.
	Status(index int, name string)

	// Progress is called after each file with the number of files attempted.
	Progress(done, total int)
}

type nopObserver struct{}

func (nopObserver) Layout(layout.Params) {}
func (nopObserver) Status(int, string)   {}
func (nopObserver) Progress(int, int)    {}
