package workflow

import (
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
)

// State is a step of the generation state machine:
//
//	Idle -> Validating -> Rejected
//	                   -> Generating -> Completed | Failed | Cancelled
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateGenerating
	StateCompleted
	StateFailed
	StateCancelled
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateValidating: "validating",
	StateRejected:   "rejected",
	StateGenerating: "generating",
	StateCompleted:  "completed",
	StateFailed:     "failed",
	StateCancelled:  "cancelled",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	switch s {
	case StateRejected, StateCompleted, StateFailed, StateCancelled:
		return true
	}
	return false
}

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user-facing message. The caller decides how to present it.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Result is the outcome of one run.
type Result struct {
	RunID    string
	State    State
	Document render.Document
	Defects  []layout.Defect
	Notice   Notice
	Err      error
}

// ShareResult is the outcome of a share action.
type ShareResult struct {
	URL    string
	Notice Notice
}
