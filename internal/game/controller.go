package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/lox/scorekeeper/internal/validate"
)

// maxPromptAttempts bounds the re-prompt loop for invalid input. Running out
// of attempts is treated like a cancel.
const maxPromptAttempts = 20

var (
	// ErrEntryInProgress is returned when a round or manual entry is started
	// while another one is still collecting input for the same session.
	ErrEntryInProgress = errors.New("another entry is already in progress")

	// ErrSessionFinished is returned for mutations of an ended game.
	ErrSessionFinished = errors.New("game is already finished")
)

// IndexError reports an out-of-range player reference. With correct UI
// wiring it should never occur; it fails the operation, not the process.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("player index %d out of range (roster has %d players)", e.Index, e.Count)
}

// Saver persists a session after each mutation. *store.Store implements it.
type Saver interface {
	Save(*Session) error
}

// InputProvider is the dialog collaborator the controller awaits on. The
// second return of the request methods reports whether a value was supplied;
// false means the user cancelled, which is a normal outcome, not an error.
// The error return is reserved for provider failures (closed UI, dead ctx).
type InputProvider interface {
	RequestText(ctx context.Context, prompt, def string) (string, bool, error)
	RequestConfirm(ctx context.Context, prompt, okLabel, cancelLabel string) (bool, bool, error)
	RequestChoice(ctx context.Context, prompt string, options []string) (int, bool, error)
	Alert(ctx context.Context, message string) error
}

// RoundResult describes how a round-entry sequence ended.
type RoundResult struct {
	Completed     bool
	Entered       int    // players whose entry was recorded
	AbortedPlayer string // set when the sequence was cancelled mid-round
}

// Controller orchestrates a session's lifecycle: creation, round entries,
// manual entries, restart and termination. Every successful mutation is
// persisted through the Saver so a mid-round interruption loses at most the
// entry being typed. Persistence failures are soft: the in-memory session
// keeps working and the failure is surfaced as a *store.StorageError-shaped
// value from the mutating method.
type Controller struct {
	session *Session
	saver   Saver
	logger  *log.Logger
	inUse   *semaphore.Weighted
}

// StartSession wraps a roster into a new session and persists it
// immediately. The returned error, if any, is the soft persistence failure.
func StartSession(players []*Player, showScoreTable bool, saver Saver, logger *log.Logger) (*Controller, error) {
	c := NewController(NewSession(players, showScoreTable), saver, logger)
	return c, c.persist()
}

// NewController resumes control over an existing (typically loaded) session.
func NewController(session *Session, saver Saver, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		session: session,
		saver:   saver,
		logger:  logger,
		inUse:   semaphore.NewWeighted(1),
	}
}

// Session exposes the controlled session for rendering.
func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) acquire() error {
	if !c.inUse.TryAcquire(1) {
		return ErrEntryInProgress
	}
	return nil
}

func (c *Controller) persist() error {
	if err := c.saver.Save(c.session); err != nil {
		c.logger.Warn("could not persist game, continuing unpersisted",
			"id", c.session.ID, "err", err)
		return err
	}
	return nil
}

// Restart resets all scores for a rematch with the same roster, keeping the
// session id so the saved record is updated in place.
func (c *Controller) Restart() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.inUse.Release(1)

	c.session.ResetScores()
	c.session.Finished = false
	return c.persist()
}

// End marks the session finished. It stays in the store for the records but
// no longer appears among resumable games.
func (c *Controller) End() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.inUse.Release(1)

	c.session.Finished = true
	return c.persist()
}

// RecordRound collects a point delta from every player in turn order for the
// current round. Each accepted entry is persisted before the next player is
// asked. A cancel stops the sequence immediately: the round counter stays
// put, entries already recorded for this round remain, and the result names
// the player whose entry was cancelled. Only when all players have answered
// does the round advance.
func (c *Controller) RecordRound(ctx context.Context, in InputProvider) (RoundResult, error) {
	if err := c.acquire(); err != nil {
		return RoundResult{}, err
	}
	defer c.inUse.Release(1)

	if c.session.Finished {
		return RoundResult{}, ErrSessionFinished
	}

	round := c.session.CurrentRound
	var res RoundResult
	var soft error

	for _, p := range c.session.Players {
		prompt := fmt.Sprintf("Round %d: %s, enter points", round, p.Name)
		delta, ok, err := c.promptDelta(ctx, in, prompt, true)
		if err != nil {
			return res, err
		}
		if !ok {
			res.AbortedPlayer = p.Name
			c.logger.Info("round entry cancelled", "round", round, "player", p.Name)
			msg := fmt.Sprintf("Points entry for %s cancelled. Round %d is not finished.", p.Name, round)
			if err := in.Alert(ctx, msg); err != nil {
				return res, err
			}
			return res, soft
		}

		p.ApplyRound(round, delta)
		res.Entered++
		if err := c.persist(); err != nil {
			soft = err
		}
	}

	c.session.AdvanceRound()
	res.Completed = true
	if err := c.persist(); err != nil {
		soft = err
	}
	return res, soft
}

// RecordManual applies an out-of-band adjustment to the player at
// playerIndex. Negative deltas are allowed. The index is bounds-checked
// against the roster.
func (c *Controller) RecordManual(playerIndex, delta int) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.inUse.Release(1)

	return c.manualEntry(playerIndex, delta)
}

// RecordManualPrompt runs the interactive manual-entry flow: pick a player,
// then collect a validated delta. Returns false when the user cancelled at
// either step.
func (c *Controller) RecordManualPrompt(ctx context.Context, in InputProvider) (bool, error) {
	if err := c.acquire(); err != nil {
		return false, err
	}
	defer c.inUse.Release(1)

	if c.session.Finished {
		return false, ErrSessionFinished
	}

	idx, ok, err := in.RequestChoice(ctx, "Choose a player:", c.session.PlayerNames())
	if err != nil || !ok {
		return false, err
	}
	if idx < 0 || idx >= len(c.session.Players) {
		return false, &IndexError{Index: idx, Count: len(c.session.Players)}
	}

	prompt := fmt.Sprintf("Enter points for %s", c.session.Players[idx].Name)
	delta, ok, err := c.promptDelta(ctx, in, prompt, true)
	if err != nil || !ok {
		return false, err
	}

	return true, c.manualEntry(idx, delta)
}

func (c *Controller) manualEntry(playerIndex, delta int) error {
	if c.session.Finished {
		return ErrSessionFinished
	}
	if playerIndex < 0 || playerIndex >= len(c.session.Players) {
		return &IndexError{Index: playerIndex, Count: len(c.session.Players)}
	}

	c.session.Players[playerIndex].ApplyManual(delta)
	return c.persist()
}

// promptDelta keeps asking until the input validates, the user cancels, or
// the attempt budget runs out. Invalid input is reported through Alert and
// re-prompted, never bubbled.
func (c *Controller) promptDelta(ctx context.Context, in InputProvider, prompt string, allowNegative bool) (int, bool, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		raw, ok, err := in.RequestText(ctx, prompt, "")
		if err != nil || !ok {
			return 0, false, err
		}

		delta, verr := validate.ParsePoints(raw, allowNegative)
		if verr == nil {
			return delta, true, nil
		}
		if err := in.Alert(ctx, verr.Error()); err != nil {
			return 0, false, err
		}
	}
	return 0, false, nil
}
