package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hearthhq/hearth/pkg/memory"
)

var (
	recallAnswersToolName    = "recall_answers"
	recallAnswersDescription = "Recall the user's saved answers from the hearth memory store. Optionally filter by category (personal, location, house, preferences, confirmation, other) or by question text substring. Use this to personalize responses with persistent knowledge about the user."

	progressToolName    = "onboarding_progress"
	progressDescription = "Get onboarding completion counts: total questions, answered, required remaining, and per-category progress."
)

// RecallAnswersInput represents the input arguments for the recall_answers tool.
type RecallAnswersInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category to filter by (personal, location, house, preferences, confirmation, other)"`
	Query    string `json:"query,omitempty" jsonschema:"optional case-insensitive substring to match against question text"`
}

// RecalledAnswer is one question/answer pair in a recall result.
type RecalledAnswer struct {
	QuestionID   string    `json:"question_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Category     string    `json:"category"`
	LastModified time.Time `json:"last_modified"`
}

// RecallAnswersOutput represents the structured output of recall_answers.
type RecallAnswersOutput struct {
	Answers []RecalledAnswer `json:"answers"`
	Count   int              `json:"count"`
}

// ProgressInput represents the input arguments for the onboarding_progress tool.
type ProgressInput struct{}

// handleRecallAnswers returns saved answers matching the optional filters.
func (s *Server) handleRecallAnswers(_ context.Context, _ *mcp.CallToolRequest, input RecallAnswersInput) (*mcp.CallToolResult, RecallAnswersOutput, error) {
	snap := s.config.Service.Snapshot()

	answers := make([]RecalledAnswer, 0, len(snap.Notes))
	for _, q := range snap.SortedQuestions() {
		note, ok := snap.Notes[q.ID]
		if !ok {
			continue
		}
		if input.Category != "" && !strings.EqualFold(input.Category, string(q.Category)) {
			continue
		}
		if input.Query != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(input.Query)) {
			continue
		}
		answers = append(answers, RecalledAnswer{
			QuestionID:   string(q.ID),
			Question:     q.Text,
			Answer:       note.Answer,
			Category:     string(q.Category),
			LastModified: note.LastModified,
		})
	}

	output := RecallAnswersOutput{
		Answers: answers,
		Count:   len(answers),
	}
	return jsonResult(s.config.Logger, output)
}

// handleProgress returns onboarding completion counts.
func (s *Server) handleProgress(_ context.Context, _ *mcp.CallToolRequest, _ ProgressInput) (*mcp.CallToolResult, memory.Progress, error) {
	return jsonResult(s.config.Logger, s.config.Service.Progress())
}
