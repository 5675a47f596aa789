// Package memory owns the hearth question/answer schema and the service that
// persists it.
//
// The unit of persistence is the [Snapshot]: the full question catalog plus
// every saved answer, serialized as one versioned record through a
// storage.Driver. The [Service] is the only writer; all other components read
// consistent snapshots or request mutations through its API.
package memory

import (
	"github.com/google/uuid"
)

// QuestionID uniquely identifies a question in the catalog. Default catalog
// questions carry fixed, well-known ids; caller-added questions get UUIDs.
type QuestionID string

// NewQuestionID generates a new unique QuestionID.
func NewQuestionID() QuestionID {
	return QuestionID(uuid.New().String())
}

// Category tags a question for priority grouping and special-case routing in
// the flow layer.
type Category string

const (
	CategoryPersonal     Category = "personal"
	CategoryLocation     Category = "location"
	CategoryHouse        Category = "house"
	CategoryPreferences  Category = "preferences"
	CategoryConfirmation Category = "confirmation"
	CategoryOther        Category = "other"
)

// Priority orders question presentation. Lower rank is asked first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank for a priority. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Question is a catalog entry describing one fact to elicit from the user.
// Questions are immutable once created; there is no update-in-place path.
type Question struct {
	ID       QuestionID `json:"id"`
	Text     string     `json:"text"`
	Category Category   `json:"category"`
	Priority Priority   `json:"priority"`

	// Required questions block completion until answered. Optional
	// questions are skippable and never returned by NextUnansweredQuestion.
	Required bool `json:"required"`

	// DisplayOrder breaks ties between questions of equal priority.
	DisplayOrder int `json:"display_order"`
}

// NewQuestion creates a caller-added question with a generated id.
func NewQuestion(text string, category Category, priority Priority, required bool, displayOrder int) Question {
	return Question{
		ID:           NewQuestionID(),
		Text:         text,
		Category:     category,
		Priority:     priority,
		Required:     required,
		DisplayOrder: displayOrder,
	}
}

// Before reports whether q should be presented ahead of other: priority rank
// first, then display order.
func (q Question) Before(other Question) bool {
	if q.Priority.Rank() != other.Priority.Rank() {
		return q.Priority.Rank() < other.Priority.Rank()
	}
	return q.DisplayOrder < other.DisplayOrder
}
