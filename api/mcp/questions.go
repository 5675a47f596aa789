package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/pkg/memory"
)

var (
	nextQuestionToolName    = "next_question"
	nextQuestionDescription = "Get the next onboarding question the assistant should ask the user. Returns the highest-priority unanswered question, or questions flagged for review. Returns done=true when nothing is pending."

	answerQuestionToolName    = "answer_question"
	answerQuestionDescription = "Save the user's answer to an onboarding question. Creates the answer if it is new or replaces the existing one. Use question ids returned by next_question."
)

// NextQuestionInput represents the input arguments for the next_question tool.
type NextQuestionInput struct{}

// NextQuestionOutput represents the structured output of next_question.
type NextQuestionOutput struct {
	Done     bool   `json:"done"`
	ID       string `json:"id,omitempty"`
	Text     string `json:"text,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// AnswerQuestionInput represents the input arguments for the answer_question tool.
type AnswerQuestionInput struct {
	QuestionID string `json:"question_id" jsonschema:"the id of the question being answered, as returned by next_question"`
	Answer     string `json:"answer" jsonschema:"the user's answer text"`
}

// AnswerQuestionOutput represents the structured output of answer_question.
type AnswerQuestionOutput struct {
	QuestionID string `json:"question_id"`
	Saved      bool   `json:"saved"`
}

// handleNextQuestion returns the question the onboarding flow would ask next.
func (s *Server) handleNextQuestion(_ context.Context, _ *mcp.CallToolRequest, _ NextQuestionInput) (*mcp.CallToolResult, NextQuestionOutput, error) {
	q := s.config.Service.CurrentQuestion()

	output := NextQuestionOutput{Done: q == nil}
	if q != nil {
		output.ID = string(q.ID)
		output.Text = q.Text
		output.Category = string(q.Category)
		output.Priority = string(q.Priority)
		output.Required = q.Required
	}

	return jsonResult(s.config.Logger, output)
}

// handleAnswerQuestion saves or replaces the answer for a question.
func (s *Server) handleAnswerQuestion(ctx context.Context, _ *mcp.CallToolRequest, input AnswerQuestionInput) (*mcp.CallToolResult, AnswerQuestionOutput, error) {
	if input.QuestionID == "" {
		return errorResult("question_id is required"), AnswerQuestionOutput{}, nil
	}

	metadata := map[string]string{memory.MetaSource: memory.SourceMCP}
	err := s.config.Service.SaveOrUpdateNote(ctx, memory.QuestionID(input.QuestionID), input.Answer, metadata)
	if err != nil {
		var notFound memory.QuestionNotFoundError
		if errors.As(err, &notFound) {
			return errorResult(fmt.Sprintf("unknown question: %s", input.QuestionID)), AnswerQuestionOutput{}, nil
		}
		var empty memory.EmptyAnswerError
		if errors.As(err, &empty) {
			return errorResult("answer must not be empty"), AnswerQuestionOutput{}, nil
		}
		s.config.Logger.Error("failed to save answer", zap.String("question_id", input.QuestionID), zap.Error(err))
		return errorResult(fmt.Sprintf("failed to save answer: %v", err)), AnswerQuestionOutput{}, nil
	}

	output := AnswerQuestionOutput{
		QuestionID: input.QuestionID,
		Saved:      true,
	}
	return jsonResult(s.config.Logger, output)
}

// errorResult wraps a message in an IsError tool result.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// jsonResult serializes the structured output as JSON for the text field.
// Per MCP spec: tools returning structured content should also return
// serialized JSON in a TextContent block for backwards compatibility
func jsonResult[T any](logger *zap.Logger, output T) (*mcp.CallToolResult, T, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal tool output", zap.Error(err))
		var zero T
		return errorResult(fmt.Sprintf("failed to serialize result: %v", err)), zero, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
