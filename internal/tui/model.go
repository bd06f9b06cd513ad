package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/scorekeeper/internal/game"
)

const maxBarWidth = 40

// opDoneMsg reports a finished controller operation back to the model.
type opDoneMsg struct {
	status string
	warn   bool
	quit   bool
}

// Model renders the score board and routes modal input requests between the
// user and the lifecycle controller.
type Model struct {
	ctrl   *game.Controller
	bridge *Bridge
	logger *log.Logger

	input     textinput.Model
	modal     *promptMsg
	choiceIdx int
	confirmOK bool

	status string
	warn   bool
	busy   bool
	width  int
	height int
}

// NewModel builds the board model for a session under ctrl.
func NewModel(ctrl *game.Controller, bridge *Bridge, logger *log.Logger) Model {
	input := textinput.New()
	input.CharLimit = 16
	input.Width = 20

	return Model{
		ctrl:   ctrl,
		bridge: bridge,
		logger: logger,
		input:  input,
		status: fmt.Sprintf("Round %d. Ready.", ctrl.Session().CurrentRound),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case promptMsg:
		return m.openModal(msg), nil

	case opDoneMsg:
		m.busy = false
		m.status = msg.status
		m.warn = msg.warn
		if msg.quit {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.updateBoard(msg)
	}

	return m, nil
}

func (m Model) openModal(msg promptMsg) Model {
	modal := msg
	m.modal = &modal
	m.choiceIdx = 0
	m.confirmOK = true

	if msg.kind == promptText {
		m.input.SetValue(msg.def)
		m.input.CursorEnd()
		m.input.Focus()
	}
	return m
}

func (m Model) closeModal(reply promptReply) Model {
	if m.modal != nil {
		m.modal.reply <- reply
	}
	m.modal = nil
	m.input.Blur()
	return m
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal := m.modal

	switch modal.kind {
	case promptText:
		switch msg.String() {
		case "enter":
			return m.closeModal(promptReply{text: m.input.Value(), ok: true}), nil
		case "esc", "ctrl+c":
			return m.closeModal(promptReply{ok: false}), nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case promptConfirm:
		switch msg.String() {
		case "left", "right", "tab":
			m.confirmOK = !m.confirmOK
			return m, nil
		case "y":
			return m.closeModal(promptReply{confirmed: true, ok: true}), nil
		case "n":
			return m.closeModal(promptReply{confirmed: false, ok: true}), nil
		case "enter":
			return m.closeModal(promptReply{confirmed: m.confirmOK, ok: true}), nil
		case "esc", "ctrl+c":
			return m.closeModal(promptReply{ok: false}), nil
		}
		return m, nil

	case promptChoice:
		switch msg.String() {
		case "up", "k":
			if m.choiceIdx > 0 {
				m.choiceIdx--
			}
			return m, nil
		case "down", "j":
			if m.choiceIdx < len(modal.options)-1 {
				m.choiceIdx++
			}
			return m, nil
		case "enter":
			return m.closeModal(promptReply{choice: m.choiceIdx, ok: true}), nil
		case "esc", "ctrl+c":
			return m.closeModal(promptReply{ok: false}), nil
		}
		return m, nil

	default: // promptAlert
		switch msg.String() {
		case "enter", "esc", " ":
			return m.closeModal(promptReply{ok: true}), nil
		}
		return m, nil
	}
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		// Everything is persisted after each mutation; quitting resumes later.
		return m, tea.Quit

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Recording round..."
		m.warn = false
		return m, m.recordRound()

	case "m":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Manual entry..."
		m.warn = false
		return m, m.recordManual()

	case "e":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Finishing game..."
		m.warn = false
		return m, m.endGame()
	}

	return m, nil
}

func (m Model) recordRound() tea.Cmd {
	ctrl, bridge := m.ctrl, m.bridge
	return func() tea.Msg {
		res, err := ctrl.RecordRound(context.Background(), bridge)
		switch {
		case isHardError(err):
			return opDoneMsg{status: fmt.Sprintf("Round entry failed: %v", err), warn: true}
		case res.Completed:
			status := fmt.Sprintf("Round recorded. Now on round %d.", ctrl.Session().CurrentRound)
			return opDoneMsg{status: status, warn: err != nil}
		default:
			status := fmt.Sprintf("Round %d not finished.", ctrl.Session().CurrentRound)
			return opDoneMsg{status: status, warn: err != nil}
		}
	}
}

func (m Model) recordManual() tea.Cmd {
	ctrl, bridge := m.ctrl, m.bridge
	return func() tea.Msg {
		done, err := ctrl.RecordManualPrompt(context.Background(), bridge)
		switch {
		case isHardError(err):
			return opDoneMsg{status: fmt.Sprintf("Manual entry failed: %v", err), warn: true}
		case done:
			return opDoneMsg{status: "Manual entry recorded.", warn: err != nil}
		default:
			return opDoneMsg{status: "Manual entry cancelled.", warn: err != nil}
		}
	}
}

// endGame shows the final scores and offers a rematch, mirroring the
// end-of-game dialog of the original board.
func (m Model) endGame() tea.Cmd {
	ctrl, bridge := m.ctrl, m.bridge
	return func() tea.Msg {
		var summary strings.Builder
		summary.WriteString("Final scores:\n\n")
		for i, p := range game.Leaderboard(ctrl.Session().Players) {
			fmt.Fprintf(&summary, "%d. %s: %d points\n", i+1, p.Name, p.Points)
		}

		again, ok, err := bridge.RequestConfirm(context.Background(), summary.String(), "Play again", "Finish")
		if err != nil {
			return opDoneMsg{status: fmt.Sprintf("End game failed: %v", err), warn: true}
		}
		if !ok {
			return opDoneMsg{status: "Game continues."}
		}

		if again {
			err := ctrl.Restart()
			if isHardError(err) {
				return opDoneMsg{status: fmt.Sprintf("Restart failed: %v", err), warn: true}
			}
			return opDoneMsg{status: "New game with the same players. Round 1.", warn: err != nil}
		}

		err = ctrl.End()
		if isHardError(err) {
			return opDoneMsg{status: fmt.Sprintf("End game failed: %v", err), warn: true}
		}
		return opDoneMsg{status: "Game finished.", quit: true}
	}
}

// isHardError separates real failures from soft persistence warnings, which
// leave the in-memory session fully usable.
func isHardError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, game.ErrEntryInProgress) || errors.Is(err, game.ErrSessionFinished)
}

func (m Model) View() string {
	var b strings.Builder

	session := m.ctrl.Session()
	b.WriteString(titleStyle.Render("Scorekeeper"))
	fmt.Fprintf(&b, "  Round %d\n\n", session.CurrentRound)

	b.WriteString(m.renderBoard())

	if session.ShowScoreTable {
		b.WriteString("\n")
		b.WriteString(m.renderHistory())
	}

	b.WriteString("\n")
	if m.warn {
		b.WriteString(warnStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("r: record round • m: manual entry • e: end game • q: save & quit"))
	b.WriteString("\n")

	if m.modal != nil {
		b.WriteString("\n")
		b.WriteString(m.renderModal())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderBoard() string {
	session := m.ctrl.Session()
	board := game.Leaderboard(session.Players)

	maxPoints := 1
	for _, p := range board {
		if p.Points > maxPoints {
			maxPoints = p.Points
		}
	}

	var b strings.Builder
	for _, p := range board {
		width := 0
		if p.Points > 0 {
			width = p.Points * maxBarWidth / maxPoints
		}
		bar := strings.Repeat("█", width)

		label := fmt.Sprintf("%-10s", p.Name)
		line := playerStyle(p.Color).Render(fmt.Sprintf("[%s] %s %s", p.Icon, label, bar))
		if session.ShowScoreTable {
			line += fmt.Sprintf(" %d", p.Points)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHistory() string {
	rows := game.HistoryView(m.ctrl.Session().Players)
	if len(rows) == 0 {
		return helpStyle.Render("No points recorded yet.") + "\n"
	}

	limit := 10
	if len(rows) < limit {
		limit = len(rows)
	}

	var b strings.Builder
	b.WriteString(historyHeaderStyle.Render("Player          Points  Round"))
	b.WriteString("\n")
	for _, row := range rows[:limit] {
		round := "manual entry"
		if !row.Entry.Manual() {
			round = fmt.Sprintf("%d", row.Entry.Round)
		}
		name := playerStyle(row.Player.Color).Render(fmt.Sprintf("%-15s", row.Player.Name))
		fmt.Fprintf(&b, "%s %+7d  %s\n", name, row.Entry.Delta, round)
	}
	return b.String()
}

func (m Model) renderModal() string {
	modal := m.modal
	var body strings.Builder
	body.WriteString(modal.prompt)
	body.WriteString("\n\n")

	switch modal.kind {
	case promptText:
		body.WriteString(m.input.View())
		body.WriteString("\n\n")
		body.WriteString(helpStyle.Render("enter: accept • esc: cancel"))

	case promptConfirm:
		ok, cancel := modal.okLabel, modal.cancelLabel
		if m.confirmOK {
			body.WriteString(modalButtonStyle.Render("[" + ok + "]"))
			body.WriteString("  " + cancel)
		} else {
			body.WriteString(ok + "  ")
			body.WriteString(modalButtonStyle.Render("[" + cancel + "]"))
		}
		body.WriteString("\n\n")
		body.WriteString(helpStyle.Render("y/n, arrows + enter • esc: dismiss"))

	case promptChoice:
		for i, opt := range modal.options {
			if i == m.choiceIdx {
				body.WriteString(selectedChoiceStyle.Render("> " + opt))
			} else {
				body.WriteString("  " + opt)
			}
			body.WriteString("\n")
		}
		body.WriteString("\n")
		body.WriteString(helpStyle.Render("up/down + enter • esc: cancel"))

	default: // promptAlert
		body.WriteString(helpStyle.Render("enter: dismiss"))
	}

	return modalStyle.Render(body.String())
}
