package reviewcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/utils"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

var (
	reviewTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	reviewMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	reviewQuestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	reviewAnswerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	reviewFlagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	reviewEmptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
	reviewCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	reviewStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
)

type reviewItem struct {
	question memory.Question
	note     *memory.Note
}

type reviewKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Flag  key.Binding
	Clear key.Binding
	Quit  key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Flag, k.Clear, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.Flag, k.Clear, k.Quit}}
}

func defaultKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Flag:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
		Clear: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type mutationDoneMsg struct {
	status string
	err    error
}

type reviewModel struct {
	ctx    context.Context
	svc    *memory.Service
	items  []reviewItem
	cursor int
	width  int
	height int
	status string
	keys   reviewKeyMap
	help   help.Model
}

func runReviewTUI(ctx context.Context, svc *memory.Service) error {
	model := newReviewModel(ctx, svc)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func newReviewModel(ctx context.Context, svc *memory.Service) reviewModel {
	return reviewModel{
		ctx:   ctx,
		svc:   svc,
		items: loadItems(svc),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// loadItems snapshots the catalog with notes attached, in presentation order.
func loadItems(svc *memory.Service) []reviewItem {
	snap := svc.Snapshot()

	items := make([]reviewItem, 0, len(snap.Questions))
	for _, q := range snap.SortedQuestions() {
		items = append(items, reviewItem{
			question: q,
			note:     snap.Notes[q.ID],
		})
	}
	return items
}

func (m reviewModel) Init() bubbletea.Cmd {
	return nil
}

func (m reviewModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.items = loadItems(m.svc)
		if m.cursor >= len(m.items) && m.cursor > 0 {
			m.cursor = len(m.items) - 1
		}
		return m, nil

	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, bubbletea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Flag):
			return m, m.toggleFlag()

		case key.Matches(msg, m.keys.Clear):
			return m, m.clearAnswer()
		}
	}

	return m, nil
}

// toggleFlag flips the review flag on the selected answer.
func (m reviewModel) toggleFlag() bubbletea.Cmd {
	if m.cursor >= len(m.items) {
		return nil
	}
	item := m.items[m.cursor]
	if item.note == nil {
		return nil
	}

	flagged := !item.note.NeedsReview()
	ctx := m.ctx
	svc := m.svc
	id := item.question.ID

	return func() bubbletea.Msg {
		if err := svc.SetReviewFlag(ctx, id, flagged); err != nil {
			return mutationDoneMsg{err: err}
		}
		if flagged {
			return mutationDoneMsg{status: fmt.Sprintf("flagged %s for review", id)}
		}
		return mutationDoneMsg{status: fmt.Sprintf("cleared flag on %s", id)}
	}
}

// clearAnswer deletes the selected answer, keeping the question.
func (m reviewModel) clearAnswer() bubbletea.Cmd {
	if m.cursor >= len(m.items) {
		return nil
	}
	item := m.items[m.cursor]
	if item.note == nil {
		return nil
	}

	ctx := m.ctx
	svc := m.svc
	id := item.question.ID

	return func() bubbletea.Msg {
		if err := svc.DeleteNote(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("cleared answer for %s", id)}
	}
}

func (m reviewModel) View() string {
	var b strings.Builder

	progress := m.svc.Progress()
	b.WriteString("\n  ")
	b.WriteString(reviewTitleStyle.Render("Hearth Review"))
	b.WriteString("  ")
	b.WriteString(reviewMutedStyle.Render(fmt.Sprintf("%d/%d answered", progress.Answered, progress.Questions)))
	if progress.NeedsReview > 0 {
		b.WriteString("  ")
		b.WriteString(reviewFlagStyle.Render(fmt.Sprintf("%d flagged", progress.NeedsReview)))
	}
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		questionStyle := reviewQuestionStyle
		if i == m.cursor {
			cursor = reviewCursorStyle.Render("▸") + " "
			questionStyle = questionStyle.Bold(true)
		}

		flag := " "
		if item.note.NeedsReview() {
			flag = reviewFlagStyle.Render("!")
		}

		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, flag, questionStyle.Render(item.question.Text)))

		if item.note != nil {
			b.WriteString(fmt.Sprintf("       %s\n", reviewAnswerStyle.Render(utils.Truncate(item.note.Answer, 72))))
		} else {
			b.WriteString(fmt.Sprintf("       %s\n", reviewEmptyStyle.Render("unanswered")))
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(reviewStatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
