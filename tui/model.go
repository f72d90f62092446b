// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/versus/chatpanel"
	"github.com/danielhkuo/versus/models"
	"github.com/danielhkuo/versus/votepanel"
	"github.com/danielhkuo/versus/widget"
)

const (
	tickInterval  = time.Second / 30
	statusTimeout = 4 * time.Second
)

type focus int

const (
	focusVotes focus = iota
	focusInput
	focusReply
)

// Changed tells the model that page state changed outside of Update.
type Changed struct{}

type tickMsg time.Time

type resultMsg struct {
	op  string
	err error
}

type clearStatusMsg struct {
	id int
}

// Model is the bubbletea model of a page.
type Model struct {
	ctx  context.Context
	page *widget.Page
	now  func() time.Time

	input    textinput.Model
	reply    textinput.Model
	focus    focus
	selected int
	replyTo  string

	status   string
	statusID int
	ticking  bool
	width    int
}

// New creates a model for page. Operations started from the UI use ctx.
func New(ctx context.Context, page *widget.Page) Model {
	input := textinput.New()
	input.Placeholder = "Say something about this one"
	input.CharLimit = models.MaxTextLength
	input.Prompt = "> "

	reply := textinput.New()
	reply.Placeholder = "Reply"
	reply.CharLimit = models.MaxTextLength
	reply.Prompt = "  ↳ "

	return Model{
		ctx:      ctx,
		page:     page,
		now:      time.Now,
		input:    input,
		reply:    reply,
		selected: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// run performs op off the UI goroutine and reports its error.
func (m Model) run(op string, f func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{op: op, err: f(ctx)}
	}
}

func (m Model) setStatus(s string) (Model, tea.Cmd) {
	m.statusID++
	m.status = s
	id := m.statusID
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

// startTicking begins the counter animation if it is needed and not running.
func (m Model) startTicking() (Model, tea.Cmd) {
	if m.ticking || !m.page.Votes.Moving(m.now()) {
		return m, nil
	}
	m.ticking = true
	return m, tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case Changed:
		m.clampSelection()
		return m.startTicking()

	case tickMsg:
		if m.page.Votes.Moving(m.now()) {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case resultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusReply:
			return m.updateReply(msg)
		default:
			return m.updateVotes(msg)
		}
	}
	return m, nil
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
	case errors.Is(msg.err, votepanel.ErrStale), errors.Is(msg.err, chatpanel.ErrStale):
		return m, nil
	case errors.Is(msg.err, votepanel.ErrBusy):
		return m.setStatus("Still loading, try again in a moment")
	default:
		return m.setStatus(fmt.Sprintf("Could not %s: %v", msg.op, msg.err))
	}

	switch msg.op {
	case "send":
		m.input.SetValue(m.page.Chat.Input().Text())
	case "reply":
		if m.replyTo != "" {
			m.reply.SetValue(m.page.Chat.ReplyComposer(m.replyTo).Text())
		}
		if m.reply.Value() == "" {
			m.endReply()
		}
	}
	m.status = ""
	return m.startTicking()
}

func (m Model) updateVotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	votes, chat := m.page.Votes, m.page.Chat

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a", "left":
		return m, m.run("vote", func(ctx context.Context) error { return votes.Vote(ctx, models.SideA) })
	case "b", "right":
		return m, m.run("vote", func(ctx context.Context) error { return votes.Vote(ctx, models.SideB) })
	case "n":
		m.page.Next()
		m.selected = -1
		return m, nil
	case "tab":
		m.selected = -1
		m.focus = focusInput
		return m, m.input.Focus()
	case "up", "k":
		if m.selected > -1 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(chat.Messages())-1 {
			m.selected++
		}
		return m, nil
	case "l":
		if id, ok := m.selectedID(); ok {
			return m, m.run("like", func(ctx context.Context) error { return chat.Like(ctx, id) })
		}
		return m, nil
	case "r", "enter":
		if id, ok := m.selectedID(); ok {
			return m.startReply(id)
		}
		m.focus = focusInput
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chat := m.page.Chat

	switch msg.String() {
	case "esc", "tab":
		m.focus = focusVotes
		m.input.Blur()
		return m, nil
	case "enter":
		chat.Input().SetText(m.input.Value())
		return m, m.run("send", chat.Send)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	chat.Input().SetText(m.input.Value())
	return m, cmd
}

func (m Model) startReply(messageID string) (tea.Model, tea.Cmd) {
	m.replyTo = messageID
	m.focus = focusReply
	m.reply.SetValue(m.page.Chat.ReplyComposer(messageID).Text())
	return m, m.reply.Focus()
}

func (m *Model) endReply() {
	m.replyTo = ""
	m.focus = focusVotes
	m.reply.Blur()
	m.reply.SetValue("")
}

func (m Model) updateReply(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chat := m.page.Chat
	id := m.replyTo

	switch msg.String() {
	case "esc":
		m.endReply()
		return m, nil
	case "enter":
		chat.ReplyComposer(id).SetText(m.reply.Value())
		return m, m.run("reply", func(ctx context.Context) error { return chat.Reply(ctx, id) })
	}

	var cmd tea.Cmd
	m.reply, cmd = m.reply.Update(msg)
	chat.ReplyComposer(id).SetText(m.reply.Value())
	return m, cmd
}

func (m Model) selectedID() (string, bool) {
	messages := m.page.Chat.Messages()
	if m.selected < 0 || m.selected >= len(messages) {
		return "", false
	}
	return messages[m.selected].ID, true
}

func (m *Model) clampSelection() {
	n := len(m.page.Chat.Messages())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.focus == focusReply && !m.hasMessage(m.replyTo) {
		m.endReply()
	}
}

func (m Model) hasMessage(id string) bool {
	for _, msg := range m.page.Chat.Messages() {
		if msg.ID == id {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	var b strings.Builder

	v := m.page.Votes.Snapshot(m.now())
	b.WriteString(titleStyle.Render("versus"))
	if v.QuestionID != 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  question #%d", v.QuestionID)))
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderOption("a", v.LabelA, v.CountA, v.VotesVisible),
		" ",
		m.renderOption("b", v.LabelB, v.CountB, v.VotesVisible),
	))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Chat"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderThread())

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) renderOption(key, label string, count int64, visible bool) string {
	body := fmt.Sprintf("[%s] %s", key, label)
	if visible {
		body += "\n" + countStyle.Render(FormatVotes(count))
	}
	return optionStyle.Render(body)
}

func (m Model) renderThread() string {
	messages := m.page.Chat.Messages()
	if m.page.Chat.Loading() {
		return mutedStyle.Render("Loading...") + "\n"
	}
	if len(messages) == 0 {
		return mutedStyle.Render(chatpanel.Placeholder) + "\n"
	}

	var b strings.Builder
	for i, msg := range messages {
		line := msg.Text + "  " + likeStyle.Render(FormatLikes(msg.Likes))
		for _, r := range msg.Replies {
			line += "\n" + replyStyle.Render("↳ "+r.Text)
		}
		if m.focus == focusReply && msg.ID == m.replyTo {
			line += "\n" + m.reply.View()
		}

		if i == m.selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(messageStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) help() string {
	switch m.focus {
	case focusInput:
		return "enter send • esc back"
	case focusReply:
		return "enter reply • esc cancel"
	default:
		return "a/b vote • n next • tab comment • ↑/↓ select • l like • r reply • q quit"
	}
}
