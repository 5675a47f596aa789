package testutils

import "github.com/hearthhq/hearth/pkg/memory"

// NewTestQuestion creates a simple question fixture.
func NewTestQuestion(id string, priority memory.Priority, required bool, order int) memory.Question {
	return memory.Question{
		ID:           memory.QuestionID(id),
		Text:         "test question " + id,
		Category:     memory.CategoryOther,
		Priority:     priority,
		Required:     required,
		DisplayOrder: order,
	}
}
