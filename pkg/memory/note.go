package memory

import (
	"strings"
	"time"
)

// Well-known metadata keys. Metadata is free-form provenance; these keys are
// the ones the system itself reads or writes.
const (
	// MetaSource records how an answer was supplied.
	MetaSource = "source"

	// MetaNeedsReview flags an answered question for re-confirmation.
	// CurrentQuestion re-selects flagged questions until the flag clears.
	MetaNeedsReview = "needs_review"
)

// MetaSource values.
const (
	SourceInteractive = "interactive"
	SourceAPI         = "api"
	SourceMCP         = "mcp"
	SourceMigration   = "migration"
)

// Note is the answer to exactly one question. At most one note exists per
// question id, and a note never outlives its question.
type Note struct {
	QuestionID   QuestionID        `json:"question_id"`
	Answer       string            `json:"answer"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	LastModified time.Time         `json:"last_modified"`
}

// NewNote creates a note for a question with both timestamps set to now.
func NewNote(questionID QuestionID, answer string, metadata map[string]string) *Note {
	now := time.Now().UTC()
	n := &Note{
		QuestionID:   questionID,
		Answer:       answer,
		CreatedAt:    now,
		LastModified: now,
	}
	for k, v := range metadata {
		n.setMeta(k, v)
	}
	return n
}

// NeedsReview reports whether the note is flagged for re-confirmation.
func (n *Note) NeedsReview() bool {
	return n != nil && n.Metadata[MetaNeedsReview] == "true"
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}

	out := *n
	if n.Metadata != nil {
		out.Metadata = make(map[string]string, len(n.Metadata))
		for k, v := range n.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

func (n *Note) setMeta(key, value string) {
	if n.Metadata == nil {
		n.Metadata = make(map[string]string)
	}
	n.Metadata[key] = value
}

// validAnswer rejects empty and whitespace-only answers.
func validAnswer(answer string) bool {
	return strings.TrimSpace(answer) != ""
}
