package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptText promptKind = iota
	promptConfirm
	promptChoice
	promptAlert
)

// promptMsg asks the model to open a modal and deliver the user's answer on
// reply. It is sent into the program from the controller goroutine.
type promptMsg struct {
	kind        promptKind
	prompt      string
	def         string
	okLabel     string
	cancelLabel string
	options     []string
	reply       chan promptReply
}

type promptReply struct {
	text      string
	confirmed bool
	choice    int
	ok        bool // false when the user dismissed the modal
}

// Bridge implements game.InputProvider on top of a running Bubble Tea
// program. Controller operations run on their own goroutine and block here
// until the user answers the modal; the UI keeps processing events
// meanwhile, which is what keeps a mid-round cancel responsive.
type Bridge struct {
	program *tea.Program
}

// NewBridge returns a bridge; SetProgram must be called before use.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetProgram attaches the running program the bridge sends requests to.
func (b *Bridge) SetProgram(p *tea.Program) {
	b.program = p
}

func (b *Bridge) request(ctx context.Context, msg promptMsg) (promptReply, error) {
	msg.reply = make(chan promptReply, 1)
	b.program.Send(msg)

	select {
	case r := <-msg.reply:
		return r, nil
	case <-ctx.Done():
		return promptReply{}, ctx.Err()
	}
}

// RequestText prompts for a line of input. ok is false on cancel.
func (b *Bridge) RequestText(ctx context.Context, prompt, def string) (string, bool, error) {
	r, err := b.request(ctx, promptMsg{kind: promptText, prompt: prompt, def: def})
	if err != nil {
		return "", false, err
	}
	return r.text, r.ok, nil
}

// RequestConfirm prompts for a labelled yes/no decision. The first return is
// the chosen answer, the second is false when the dialog was dismissed.
func (b *Bridge) RequestConfirm(ctx context.Context, prompt, okLabel, cancelLabel string) (bool, bool, error) {
	r, err := b.request(ctx, promptMsg{
		kind:        promptConfirm,
		prompt:      prompt,
		okLabel:     okLabel,
		cancelLabel: cancelLabel,
	})
	if err != nil {
		return false, false, err
	}
	return r.confirmed, r.ok, nil
}

// RequestChoice prompts to pick one of options, returning its index.
func (b *Bridge) RequestChoice(ctx context.Context, prompt string, options []string) (int, bool, error) {
	r, err := b.request(ctx, promptMsg{kind: promptChoice, prompt: prompt, options: options})
	if err != nil {
		return 0, false, err
	}
	return r.choice, r.ok, nil
}

// Alert shows a message and waits for it to be dismissed.
func (b *Bridge) Alert(ctx context.Context, message string) error {
	_, err := b.request(ctx, promptMsg{kind: promptAlert, prompt: message})
	return err
}
