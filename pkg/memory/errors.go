package memory

import "fmt"

// QuestionNotFoundError is returned when a mutation references a question id
// that is not in the catalog.
type QuestionNotFoundError struct {
	ID QuestionID
}

func (e QuestionNotFoundError) Error() string {
	return fmt.Sprintf("question not found: %s", e.ID)
}

// NoteNotFoundError is returned by UpdateNote when no note exists for the
// question.
type NoteNotFoundError struct {
	ID QuestionID
}

func (e NoteNotFoundError) Error() string {
	return fmt.Sprintf("no note for question: %s", e.ID)
}

// NoteExistsError is returned by SaveNote when the question already has a
// note; callers wanting upsert semantics use SaveOrUpdateNote.
type NoteExistsError struct {
	ID QuestionID
}

func (e NoteExistsError) Error() string {
	return fmt.Sprintf("note already exists for question: %s", e.ID)
}

// DuplicateQuestionError is returned by AddQuestion when the id is already in
// the catalog.
type DuplicateQuestionError struct {
	ID QuestionID
}

func (e DuplicateQuestionError) Error() string {
	return fmt.Sprintf("question already exists: %s", e.ID)
}

// EmptyAnswerError is returned when an answer is empty or whitespace-only.
type EmptyAnswerError struct {
	ID QuestionID
}

func (e EmptyAnswerError) Error() string {
	return fmt.Sprintf("empty answer for question: %s", e.ID)
}

// EncodeError wraps a snapshot serialization failure.
type EncodeError struct {
	Err error
}

func (e EncodeError) Error() string {
	return fmt.Sprintf("encoding memory snapshot: %v", e.Err)
}

func (e EncodeError) Unwrap() error { return e.Err }

// DecodeError wraps a snapshot deserialization failure. The service
// downgrades decode failures during load to "treat as empty store"; the type
// exists so that policy lives in exactly one place.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decoding memory snapshot: %v", e.Err)
}

func (e DecodeError) Unwrap() error { return e.Err }

// MigrationError is returned when a schema migration step cannot complete.
// The pre-migration snapshot is left untouched.
type MigrationError struct {
	Reason string
}

func (e MigrationError) Error() string {
	return fmt.Sprintf("memory migration failed: %s", e.Reason)
}
