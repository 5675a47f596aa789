// Package flow drives the onboarding conversation: it walks the user through
// questions needing review one at a time, validates each answer, routes
// category-specific side effects, and persists through the memory service.
package flow

import (
	"fmt"

	"github.com/hearthhq/hearth/pkg/memory"
)

// State is the closed set of machine states. Exactly four types implement
// it: Idle, WaitingForAnswer, Completed, and Failed.
type State interface {
	flowState()

	// Description is a human-readable summary for observers and logs.
	Description() string
}

// Idle is the initial state; nothing has been asked yet.
type Idle struct{}

func (Idle) flowState() {}

func (Idle) Description() string { return "idle" }

// WaitingForAnswer holds the question currently presented to the user.
type WaitingForAnswer struct {
	Question memory.Question
}

func (WaitingForAnswer) flowState() {}

func (s WaitingForAnswer) Description() string {
	return fmt.Sprintf("waiting for answer: %s", s.Question.Text)
}

// Completed is the terminal state once nothing needs review. Reset returns
// the machine to Idle, so it is re-enterable.
type Completed struct{}

func (Completed) flowState() {}

func (Completed) Description() string { return "completed" }

// Failed carries the message of an unrecoverable service failure. The
// machine stays here until the caller resets or restarts the conversation.
type Failed struct {
	Message string
}

func (Failed) flowState() {}

func (s Failed) Description() string {
	return fmt.Sprintf("error: %s", s.Message)
}
