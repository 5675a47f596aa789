package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/pkg/memory"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AddQuestionRequest is the body for POST /questions.
type AddQuestionRequest struct {
	Text         string          `json:"text"`
	Category     memory.Category `json:"category"`
	Priority     memory.Priority `json:"priority"`
	Required     bool            `json:"required"`
	DisplayOrder int             `json:"display_order"`
}

// PutNoteRequest is the body for PUT /notes/:questionID.
type PutNoteRequest struct {
	Answer   string            `json:"answer"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleMemoryStats returns statistics about the memory store.
func (s *Server) handleMemoryStats(c *fiber.Ctx) error {
	snap := s.svc.Snapshot()

	stats := map[string]any{
		"schema_version": snap.SchemaVersion,
		"questions":      len(snap.Questions),
		"notes":          len(snap.Notes),
	}

	return c.JSON(stats)
}

// handleProgress returns onboarding completion counts.
func (s *Server) handleProgress(c *fiber.Ctx) error {
	return c.JSON(s.svc.Progress())
}

// handleListQuestions returns the full question catalog in presentation order.
func (s *Server) handleListQuestions(c *fiber.Ctx) error {
	questions := s.svc.Snapshot().SortedQuestions()

	return c.JSON(map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}

// handleUnansweredQuestions returns every question without a note.
func (s *Server) handleUnansweredQuestions(c *fiber.Ctx) error {
	questions := s.svc.UnansweredQuestions()

	return c.JSON(map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}

// handleNextQuestion returns the question the flow would ask next, or 204 when
// nothing is pending.
func (s *Server) handleNextQuestion(c *fiber.Ctx) error {
	q := s.svc.CurrentQuestion()
	if q == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(q)
}

// handleAddQuestion adds a caller-defined question to the catalog.
func (s *Server) handleAddQuestion(c *fiber.Ctx) error {
	var req AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "question text required"})
	}
	if req.Category == "" {
		req.Category = memory.CategoryOther
	}
	if req.Priority == "" {
		req.Priority = memory.PriorityMedium
	}

	q := memory.NewQuestion(req.Text, req.Category, req.Priority, req.Required, req.DisplayOrder)
	if err := s.svc.AddQuestion(c.Context(), q); err != nil {
		var dup memory.DuplicateQuestionError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
		}
		s.logger.Error("failed to add question", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to add question"})
	}

	return c.Status(fiber.StatusCreated).JSON(q)
}

// handleDeleteQuestion removes a question and its note.
func (s *Server) handleDeleteQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "id parameter required"})
	}

	if err := s.svc.DeleteQuestion(c.Context(), memory.QuestionID(id)); err != nil {
		var notFound memory.QuestionNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "question not found"})
		}
		s.logger.Error("failed to delete question", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete question"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleGetNote returns the note for a question.
func (s *Server) handleGetNote(c *fiber.Ctx) error {
	id := c.Params("questionID")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "questionID parameter required"})
	}

	note := s.svc.GetNote(memory.QuestionID(id))
	if note == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "note not found"})
	}

	return c.JSON(note)
}

// handlePutNote saves or replaces the answer for a question.
func (s *Server) handlePutNote(c *fiber.Ctx) error {
	id := c.Params("questionID")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "questionID parameter required"})
	}

	var req PutNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	metadata := map[string]string{memory.MetaSource: memory.SourceAPI}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	if err := s.svc.SaveOrUpdateNote(c.Context(), memory.QuestionID(id), req.Answer, metadata); err != nil {
		var notFound memory.QuestionNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "question not found"})
		}
		var empty memory.EmptyAnswerError
		if errors.As(err, &empty) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		s.logger.Error("failed to save note", zap.String("question_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to save note"})
	}

	return c.JSON(s.svc.GetNote(memory.QuestionID(id)))
}

// handleDeleteNote removes the answer for a question, leaving the question in
// place. Deleting an absent note succeeds.
func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id := c.Params("questionID")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "questionID parameter required"})
	}

	if err := s.svc.DeleteNote(c.Context(), memory.QuestionID(id)); err != nil {
		s.logger.Error("failed to delete note", zap.String("question_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete note"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
