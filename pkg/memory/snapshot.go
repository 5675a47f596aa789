package memory

import (
	"encoding/json"
	"sort"
)

// Snapshot is the root aggregate: the full question catalog, every note, and
// the schema version. The whole snapshot is the unit of persistence and of
// migration.
type Snapshot struct {
	SchemaVersion int                  `json:"schema_version"`
	Questions     []Question           `json:"questions"`
	Notes         map[QuestionID]*Note `json:"notes"`
}

// NewSnapshot returns a snapshot seeded with the default question catalog at
// the current schema version, with no notes.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		Questions:     DefaultQuestions(),
		Notes:         make(map[QuestionID]*Note),
	}
}

// Clone returns a deep copy. Mutations always operate on a clone so an
// in-flight reader keeps a fully-consistent view and a failed persist leaves
// the published snapshot untouched.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		SchemaVersion: s.SchemaVersion,
		Questions:     make([]Question, len(s.Questions)),
		Notes:         make(map[QuestionID]*Note, len(s.Notes)),
	}
	copy(out.Questions, s.Questions)
	for id, note := range s.Notes {
		out.Notes[id] = note.Clone()
	}
	return out
}

// Question returns the catalog entry for id.
func (s *Snapshot) Question(id QuestionID) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// questionByText returns the catalog entry whose prompt matches text exactly.
// Migration steps are keyed by text identity, not id.
func (s *Snapshot) questionByText(text string) (Question, bool) {
	for _, q := range s.Questions {
		if q.Text == text {
			return q, true
		}
	}
	return Question{}, false
}

// removeQuestion deletes a question and its note, if any.
func (s *Snapshot) removeQuestion(id QuestionID) {
	for i, q := range s.Questions {
		if q.ID == id {
			s.Questions = append(s.Questions[:i], s.Questions[i+1:]...)
			break
		}
	}
	delete(s.Notes, id)
}

// SortedQuestions returns the full catalog ordered by priority then display
// order.
func (s *Snapshot) SortedQuestions() []Question {
	return s.sortedQuestions(nil)
}

// sortedQuestions returns the catalog filtered by keep, ordered by priority
// then display order. Iteration order over the catalog slice is preserved for
// equal keys.
func (s *Snapshot) sortedQuestions(keep func(Question) bool) []Question {
	out := make([]Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// Encode serializes the snapshot for the storage substrate.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, EncodeError{Err: err}
	}
	return data, nil
}

// DecodeSnapshot parses persisted snapshot bytes.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, DecodeError{Err: err}
	}
	if snap.Notes == nil {
		snap.Notes = make(map[QuestionID]*Note)
	}
	return snap, nil
}
