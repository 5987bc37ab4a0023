package session

import (
	"errors"
)

var (
	ErrTemplateMissing = errors.New("back template not found")
	ErrNoFiles         = errors.New("no files uploaded")
	ErrLayoutSeed      = errors.New("could not read first file to set dimensions")
	ErrWrite           = errors.New("report write failed")
	ErrRunState        = errors.New("invalid run state")
	ErrUnsupported     = errors.New("not supported on this platform")
	ErrNotFound        = errors.New("report not found")
)
