package session

import (
	"github.com/abhisek/mates/internal/exercise"
	sess "github.com/abhisek/mates/internal/session"
)

// exerciseReadyMsg is sent when an exercise has been generated.
type exerciseReadyMsg struct {
	Exercise *exercise.Exercise
	Err      error
}

// evaluatedMsg is sent when the submitted answer has been judged.
type evaluatedMsg struct {
	Submission *sess.Submission
	Err        error
}
