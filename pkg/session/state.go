package session

import (
	"fmt"
)

type State string

const (
	StateIdle               State = "idle"
	StateValidatingTemplate State = "validating_template"
	StateHalted             State = "halted"
	StateAwaitingUpload     State = "awaiting_upload"
	StateProcessing         State = "processing"
	StateFinalizing         State = "finalizing"
	StateComplete           State = "complete"
	StateFailed             State = "failed"
)

var transitions = map[State][]State{
	StateIdle:               {StateValidatingTemplate},
	StateValidatingTemplate: {StateHalted, StateAwaitingUpload},
	StateAwaitingUpload:     {StateHalted, StateProcessing},
	StateProcessing:         {StateFinalizing, StateFailed},
	StateFinalizing:         {StateComplete, StateFailed},
}

func (s State) can(next State) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}

	return false
}

// Done reports whether no further transition is possible.
func (s State) Done() bool {
	return len(transitions[s]) == 0
}

func transition(current *State, next State) error {
	if !current.can(next) {
		return fmt.Errorf("%w: %s -> %s", ErrRunState, *current, next)
	}

	*current = next

	return nil
}
