package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hearthhq/hearth/pkg/eventstream"
	"github.com/hearthhq/hearth/pkg/storage"
)

// Service is the single writer over the memory snapshot. All mutations run
// under one mutex; each mutation clones the active snapshot, applies the
// change, persists through the storage driver, and only then swaps the
// active snapshot reference. Readers always see either the full pre- or full
// post-mutation snapshot, never a mix.
type Service struct {
	mu sync.RWMutex

	store storage.Driver
	snap  *Snapshot

	subMu sync.Mutex
	subs  map[int]chan *Snapshot
	nextSub int

	pub eventstream.Publisher
	log *slog.Logger
}

// Option configures a Service created with NewService.
type Option func(*Service)

// WithPublisher mirrors every persisted mutation onto an eventstream backend.
func WithPublisher(pub eventstream.Publisher) Option {
	return func(s *Service) {
		s.pub = pub
	}
}

// WithLogger overrides the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService loads the persisted snapshot and returns a ready service.
//
// A missing record means first run: the snapshot is seeded from the default
// catalog. Corrupt bytes are treated the same way: availability over strict
// durability; an installation with a damaged record re-onboards instead of
// refusing to start. Snapshots at an older schema version are migrated before
// first use; a migration failure aborts startup with the original record
// untouched on disk.
func NewService(ctx context.Context, store storage.Driver, opts ...Option) (*Service, error) {
	s := &Service{
		store: store,
		subs:  make(map[int]chan *Snapshot),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, fresh, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = snap

	if fresh {
		if err := s.persist(ctx, snap); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Service) loadSnapshot(ctx context.Context) (snap *Snapshot, fresh bool, err error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		var notFound storage.NotFoundError
		if errors.As(err, &notFound) {
			s.log.Info("no memory record found, seeding default catalog")
			return NewSnapshot(), true, nil
		}
		return nil, false, err
	}

	snap, err = DecodeSnapshot(data)
	if err != nil {
		s.log.Warn("memory record is corrupt, reinitializing with defaults", "error", err)
		return NewSnapshot(), true, nil
	}

	if snap.SchemaVersion < CurrentSchemaVersion {
		from := snap.SchemaVersion
		migrated, err := Migrate(snap)
		if err != nil {
			return nil, false, err
		}
		s.log.Info("migrated memory snapshot",
			"from_version", from,
			"to_version", migrated.SchemaVersion,
		)
		return migrated, true, nil
	}

	return snap, false, nil
}

// Reload re-reads the persisted record and swaps it in as the active
// snapshot, notifying subscribers. Used when the storage substrate changed
// underneath the service (e.g. an external edit to the memory file).
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()

	snap, fresh, err := s.loadSnapshot(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if fresh {
		if err := s.persist(ctx, snap); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	s.snap = snap
	s.mu.Unlock()

	s.notify(ctx, "reload", "", snap)
	return nil
}

// Snapshot returns a deep copy of the active snapshot.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Close closes the underlying storage driver and the eventstream publisher.
func (s *Service) Close() error {
	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()

	var errs []error
	if s.pub != nil {
		if err := s.pub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Subscribe registers a change listener. The returned channel receives the
// post-mutation snapshot after every successful mutation; delivery is
// latest-wins, so a slow consumer skips intermediate snapshots rather than
// blocking writers. The cancel function removes the subscription and closes
// the channel.
func (s *Service) Subscribe() (<-chan *Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan *Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// mutate runs fn against a clone of the active snapshot under the write
// lock, persists the result, swaps the active reference, and notifies
// subscribers after the lock is released. fn returns the question id the
// mutation targeted, for the published event.
func (s *Service) mutate(ctx context.Context, op string, fn func(*Snapshot) (QuestionID, error)) error {
	s.mu.Lock()

	next := s.snap.Clone()
	qid, err := fn(next)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}

	s.snap = next
	s.mu.Unlock()

	s.notify(ctx, op, qid, next)
	return nil
}

func (s *Service) persist(ctx context.Context, snap *Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	return s.store.Save(ctx, data)
}

func (s *Service) notify(ctx context.Context, op string, qid QuestionID, snap *Snapshot) {
	s.subMu.Lock()
	for _, ch := range s.subs {
		// Latest-wins: drop a pending snapshot the consumer never read.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap.Clone():
		default:
		}
	}
	s.subMu.Unlock()

	if s.pub == nil {
		return
	}

	event := eventstream.NewSnapshotUpdatedEvent(
		op, string(qid), snap.SchemaVersion, len(snap.Questions), len(snap.Notes),
	)
	if err := s.pub.PublishSnapshotUpdated(ctx, event); err != nil {
		// Notification is best-effort; the mutation is already durable.
		s.log.Warn("publishing snapshot event failed", "mutation", op, "error", err)
	}
}

// SaveNote creates the note for a question. Strictly create: an existing note
// for the same question is NoteExistsError, never an overwrite.
func (s *Service) SaveNote(ctx context.Context, note *Note) error {
	if note == nil {
		return errors.New("cannot save nil note")
	}
	if !validAnswer(note.Answer) {
		return EmptyAnswerError{ID: note.QuestionID}
	}

	return s.mutate(ctx, "save_note", func(snap *Snapshot) (QuestionID, error) {
		if _, ok := snap.Question(note.QuestionID); !ok {
			return "", QuestionNotFoundError{ID: note.QuestionID}
		}
		if _, ok := snap.Notes[note.QuestionID]; ok {
			return "", NoteExistsError{ID: note.QuestionID}
		}

		stored := note.Clone()
		now := time.Now().UTC()
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		stored.LastModified = laterThan(now, stored.LastModified)
		snap.Notes[note.QuestionID] = stored
		return note.QuestionID, nil
	})
}

// UpdateNote replaces the answer and metadata of an existing note.
// LastModified always moves strictly forward.
func (s *Service) UpdateNote(ctx context.Context, note *Note) error {
	if note == nil {
		return errors.New("cannot update nil note")
	}
	if !validAnswer(note.Answer) {
		return EmptyAnswerError{ID: note.QuestionID}
	}

	return s.mutate(ctx, "update_note", func(snap *Snapshot) (QuestionID, error) {
		existing, ok := snap.Notes[note.QuestionID]
		if !ok {
			return "", NoteNotFoundError{ID: note.QuestionID}
		}

		stored := note.Clone()
		stored.CreatedAt = existing.CreatedAt
		stored.LastModified = nextModified(existing.LastModified)
		snap.Notes[note.QuestionID] = stored
		return note.QuestionID, nil
	})
}

// SaveOrUpdateNote is the primary write path: create the note if absent,
// otherwise merge metadata (new keys overwrite) and update the answer.
// Repeating the call with identical arguments converges on the same stored
// value, with LastModified still strictly increasing.
func (s *Service) SaveOrUpdateNote(ctx context.Context, id QuestionID, answer string, metadata map[string]string) error {
	if !validAnswer(answer) {
		return EmptyAnswerError{ID: id}
	}

	return s.mutate(ctx, "save_or_update_note", func(snap *Snapshot) (QuestionID, error) {
		if _, ok := snap.Question(id); !ok {
			return "", QuestionNotFoundError{ID: id}
		}

		existing, ok := snap.Notes[id]
		if !ok {
			snap.Notes[id] = NewNote(id, answer, metadata)
			return id, nil
		}

		updated := existing.Clone()
		updated.Answer = answer
		for k, v := range metadata {
			updated.setMeta(k, v)
		}
		updated.LastModified = nextModified(existing.LastModified)
		snap.Notes[id] = updated
		return id, nil
	})
}

// DeleteNote removes the note for a question. Deleting an absent note is a
// no-op, not an error.
func (s *Service) DeleteNote(ctx context.Context, id QuestionID) error {
	return s.mutate(ctx, "delete_note", func(snap *Snapshot) (QuestionID, error) {
		delete(snap.Notes, id)
		return id, nil
	})
}

// GetNote returns a copy of the note for a question, or nil if unanswered.
func (s *Service) GetNote(id QuestionID) *Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Notes[id].Clone()
}

// AddQuestion adds a caller-defined question to the catalog.
func (s *Service) AddQuestion(ctx context.Context, q Question) error {
	return s.mutate(ctx, "add_question", func(snap *Snapshot) (QuestionID, error) {
		if _, ok := snap.Question(q.ID); ok {
			return "", DuplicateQuestionError{ID: q.ID}
		}
		snap.Questions = append(snap.Questions, q)
		return q.ID, nil
	})
}

// DeleteQuestion removes a question and cascades the delete to its note.
func (s *Service) DeleteQuestion(ctx context.Context, id QuestionID) error {
	return s.mutate(ctx, "delete_question", func(snap *Snapshot) (QuestionID, error) {
		if _, ok := snap.Question(id); !ok {
			return "", QuestionNotFoundError{ID: id}
		}
		snap.removeQuestion(id)
		return id, nil
	})
}

// ResetToDefaults replaces the catalog with the default question set. Notes
// whose question survives in the default catalog are preserved; notes for
// retired questions are discarded.
func (s *Service) ResetToDefaults(ctx context.Context) error {
	return s.mutate(ctx, "reset_to_defaults", func(snap *Snapshot) (QuestionID, error) {
		snap.Questions = DefaultQuestions()
		for id := range snap.Notes {
			if _, ok := snap.Question(id); !ok {
				delete(snap.Notes, id)
			}
		}
		return "", nil
	})
}

// ClearAllData keeps the current question catalog and discards every note.
func (s *Service) ClearAllData(ctx context.Context) error {
	return s.mutate(ctx, "clear_all_data", func(snap *Snapshot) (QuestionID, error) {
		snap.Notes = make(map[QuestionID]*Note)
		return "", nil
	})
}

// SetReviewFlag marks or unmarks an answered question for re-confirmation.
// Flagged questions re-enter CurrentQuestion selection until the flag clears.
func (s *Service) SetReviewFlag(ctx context.Context, id QuestionID, flagged bool) error {
	return s.mutate(ctx, "set_review_flag", func(snap *Snapshot) (QuestionID, error) {
		existing, ok := snap.Notes[id]
		if !ok {
			return "", NoteNotFoundError{ID: id}
		}

		updated := existing.Clone()
		if flagged {
			updated.setMeta(MetaNeedsReview, "true")
		} else {
			delete(updated.Metadata, MetaNeedsReview)
		}
		updated.LastModified = nextModified(existing.LastModified)
		snap.Notes[id] = updated
		return id, nil
	})
}

// CurrentQuestion returns the highest-priority question needing review:
// unanswered, or answered but flagged for re-confirmation. Returns nil when
// nothing needs review.
func (s *Service) CurrentQuestion() *Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := s.snap.sortedQuestions(func(q Question) bool {
		note, ok := s.snap.Notes[q.ID]
		return !ok || note.NeedsReview()
	})
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// QuestionsNeedingReview returns every question that is unanswered or flagged
// for re-confirmation, sorted by priority then display order.
func (s *Service) QuestionsNeedingReview() []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.sortedQuestions(func(q Question) bool {
		note, ok := s.snap.Notes[q.ID]
		return !ok || note.NeedsReview()
	})
}

// NextUnansweredQuestion returns the highest-priority required question with
// no note. Optional questions never block this query.
func (s *Service) NextUnansweredQuestion() *Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := s.snap.sortedQuestions(func(q Question) bool {
		_, answered := s.snap.Notes[q.ID]
		return q.Required && !answered
	})
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// UnansweredQuestions returns every unanswered question, required or not,
// sorted by priority then display order.
func (s *Service) UnansweredQuestions() []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.sortedQuestions(func(q Question) bool {
		_, answered := s.snap.Notes[q.ID]
		return !answered
	})
}

// AllRequiredAnswered reports whether every required question has a note.
func (s *Service) AllRequiredAnswered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.snap.Questions {
		if !q.Required {
			continue
		}
		if _, ok := s.snap.Notes[q.ID]; !ok {
			return false
		}
	}
	return true
}

// laterThan returns the later of two times.
func laterThan(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// nextModified returns a timestamp strictly after prev, even when the clock
// has not advanced past it.
func nextModified(prev time.Time) time.Time {
	now := time.Now().UTC()
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
