package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeSnapshotUpdated is emitted after a memory mutation persists.
	EventTypeSnapshotUpdated = "hearth.memory.snapshot.updated"
)

// SnapshotUpdatedEvent is a transport-neutral payload describing one
// persisted memory mutation. It carries counts rather than the snapshot
// itself; in-process subscribers that need the full snapshot use the memory
// service's own subscription channel.
type SnapshotUpdatedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	// Mutation names the operation that produced this event, e.g.
	// "save_note", "delete_question", "reset_to_defaults".
	Mutation string `json:"mutation"`

	// QuestionID is the question the mutation targeted, when it targeted
	// exactly one.
	QuestionID string `json:"question_id,omitempty"`

	// StoreSchemaVersion is the memory snapshot's schema version.
	StoreSchemaVersion int `json:"store_schema_version"`

	QuestionCount int `json:"question_count"`
	NoteCount     int `json:"note_count"`
}

// NewSnapshotUpdatedEvent builds an event with id, type, and timestamp filled.
func NewSnapshotUpdatedEvent(mutation, questionID string, storeVersion, questions, notes int) *SnapshotUpdatedEvent {
	return &SnapshotUpdatedEvent{
		SchemaVersion:      SchemaVersionV1,
		EventType:          EventTypeSnapshotUpdated,
		EventID:            uuid.New().String(),
		EmittedAt:          time.Now().UTC(),
		Mutation:           mutation,
		QuestionID:         questionID,
		StoreSchemaVersion: storeVersion,
		QuestionCount:      questions,
		NoteCount:          notes,
	}
}
