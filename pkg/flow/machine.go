package flow

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/hearthhq/hearth/pkg/address"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/profile"
)

// Machine is the question flow state machine. It is the memory service's
// primary client: Start picks the first question needing review, each
// ProcessInput persists an answer and advances, and the machine lands in
// Completed once nothing is left.
//
// Service failures put the machine in Failed; it never auto-retries. Adapter
// failures (address parsing, profile writes) are folded into an unassisted
// answer and never fail the flow.
type Machine struct {
	mu sync.Mutex

	svc   *memory.Service
	hooks map[memory.Category]Hook
	acks  ackSet

	state State

	onComplete func()
	log        *slog.Logger

	profiles *profile.Store
	addr     address.Adapter

	// skipped holds optional questions passed over this session. Cleared by
	// Reset; skipped questions come back in the next conversation.
	skipped map[memory.QuestionID]bool
}

// MachineOption configures a Machine created with NewMachine.
type MachineOption func(*Machine)

// WithProfileStore wires the display/house-name store consulted by the
// personal and house category hooks.
func WithProfileStore(store *profile.Store) MachineOption {
	return func(m *Machine) {
		m.profiles = store
	}
}

// WithAddressAdapter wires the address resolver consulted by the location
// and confirmation category hooks.
func WithAddressAdapter(adapter address.Adapter) MachineOption {
	return func(m *Machine) {
		m.addr = adapter
	}
}

// WithAckTokens replaces the acknowledgment allow-list ignored on
// confirmation-category questions.
func WithAckTokens(tokens []string) MachineOption {
	return func(m *Machine) {
		m.acks = newAckSet(tokens)
	}
}

// WithHook overrides or adds the post-validation hook for one category.
func WithHook(category memory.Category, hook Hook) MachineOption {
	return func(m *Machine) {
		m.hooks[category] = hook
	}
}

// WithOnComplete registers the completion signal, fired exactly once per
// pass through the flow when the machine transitions into Completed.
func WithOnComplete(fn func()) MachineOption {
	return func(m *Machine) {
		m.onComplete = fn
	}
}

// WithLogger overrides the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.log = log
	}
}

// NewMachine creates an idle machine over the given memory service.
func NewMachine(svc *memory.Service, opts ...MachineOption) *Machine {
	m := &Machine{
		svc:     svc,
		state:   Idle{},
		acks:    newAckSet(DefaultAckTokens()),
		log:     slog.Default(),
		hooks:   make(map[memory.Category]Hook),
		skipped: make(map[memory.QuestionID]bool),
	}

	for _, opt := range opts {
		opt(m)
	}

	// Options may override individual hooks; defaults fill in the
	// categories the caller left alone.
	for cat, hook := range defaultHooks(m.profiles, m.addr) {
		if _, ok := m.hooks[cat]; !ok {
			m.hooks[cat] = hook
		}
	}

	return m
}

// Start begins (or resumes) the conversation from Idle: the machine asks the
// memory service for the next question needing review and transitions to
// WaitingForAnswer, or straight to Completed when nothing needs review.
func (m *Machine) Start(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.advance(ctx)
}

// ProcessInput handles one user utterance. Outside WaitingForAnswer it is
// ignored. Blank input is ignored. For confirmation-category questions,
// configured acknowledgment tokens are ignored too, so a rubber-stamp "ok"
// never overwrites a pre-filled suggestion. Anything else is persisted as
// the answer and the machine advances.
func (m *Machine) ProcessInput(ctx context.Context, text string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	waiting, ok := m.state.(WaitingForAnswer)
	if !ok {
		return m.state
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return m.state
	}

	q := waiting.Question
	if q.Category == memory.CategoryConfirmation && m.acks.contains(answer) {
		m.log.Debug("ignoring acknowledgment for confirmation question",
			"question_id", q.ID,
			"input", answer,
		)
		return m.state
	}

	answer, metadata := m.applyHook(ctx, q, answer)
	metadata[memory.MetaSource] = memory.SourceInteractive
	// An interactive answer settles any pending re-confirmation.
	metadata[memory.MetaNeedsReview] = "false"

	if err := m.svc.SaveOrUpdateNote(ctx, q.ID, answer, metadata); err != nil {
		m.log.Error("persisting answer failed", "question_id", q.ID, "error", err)
		m.state = Failed{Message: err.Error()}
		return m.state
	}

	return m.advance(ctx)
}

// Skip passes over the current question for the rest of this session.
// Required questions cannot be skipped; Skip returns the unchanged state.
func (m *Machine) Skip(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	waiting, ok := m.state.(WaitingForAnswer)
	if !ok || waiting.Question.Required {
		return m.state
	}

	m.skipped[waiting.Question.ID] = true
	return m.advance(ctx)
}

// Reset unconditionally returns the machine to Idle. Persisted notes are
// untouched; only in-memory flow state is cleared, including session skips.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Idle{}
	m.skipped = make(map[memory.QuestionID]bool)
}

// Current returns the machine's state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentQuestion returns the question being asked, or nil outside
// WaitingForAnswer.
func (m *Machine) CurrentQuestion() *memory.Question {
	m.mu.Lock()
	defer m.mu.Unlock()

	if waiting, ok := m.state.(WaitingForAnswer); ok {
		q := waiting.Question
		return &q
	}
	return nil
}

// CompletedAll reports whether the machine has reached Completed.
func (m *Machine) CompletedAll() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.state.(Completed)
	return ok
}

// Suggestion returns a pre-filled hint for the current question, sourced
// from the adapters: detected address for location questions, the stored
// address for confirmation, a generated name for house naming. Returns ""
// when no adapter can help; the prompt is then simply unassisted.
func (m *Machine) Suggestion(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	waiting, ok := m.state.(WaitingForAnswer)
	if !ok {
		return ""
	}

	switch waiting.Question.Category {
	case memory.CategoryLocation:
		if m.addr == nil {
			return ""
		}
		detected, err := m.addr.DetectCurrent(ctx)
		if err != nil {
			m.log.Debug("address detection unavailable", "error", err)
			return ""
		}
		return detected.String()

	case memory.CategoryConfirmation:
		if note := m.svc.GetNote(memory.QuestionHomeAddress); note != nil {
			return note.Answer
		}
		return ""

	case memory.CategoryHouse:
		if m.addr == nil {
			return ""
		}
		if note := m.svc.GetNote(memory.QuestionHomeAddress); note != nil {
			return m.addr.GenerateHouseName(note.Answer)
		}
		return ""

	default:
		return ""
	}
}

// Description returns a human-readable summary of the current state.
func (m *Machine) Description() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Description()
}

// advance re-queries the service and transitions. Session-skipped questions
// are passed over. Callers hold m.mu.
func (m *Machine) advance(_ context.Context) State {
	var q *memory.Question
	for _, candidate := range m.svc.QuestionsNeedingReview() {
		if m.skipped[candidate.ID] {
			continue
		}
		q = &candidate
		break
	}

	if q == nil {
		wasCompleted := false
		if _, ok := m.state.(Completed); ok {
			wasCompleted = true
		}
		m.state = Completed{}
		if !wasCompleted && m.onComplete != nil {
			m.onComplete()
		}
		return m.state
	}

	m.state = WaitingForAnswer{Question: *q}
	return m.state
}

// applyHook runs the category hook, if any. Hook failures degrade to the
// raw answer: the flow never stalls because an adapter is unavailable.
func (m *Machine) applyHook(ctx context.Context, q memory.Question, answer string) (string, map[string]string) {
	metadata := make(map[string]string)

	hook, ok := m.hooks[q.Category]
	if !ok {
		return answer, metadata
	}

	canonical, extra, err := hook(ctx, q, answer)
	if err != nil {
		m.log.Warn("category hook failed, keeping raw answer",
			"question_id", q.ID,
			"category", q.Category,
			"error", err,
		)
		return answer, metadata
	}

	for k, v := range extra {
		metadata[k] = v
	}
	return canonical, metadata
}
