package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lox/scorekeeper/internal/config"
	"github.com/lox/scorekeeper/internal/game"
	"github.com/lox/scorekeeper/internal/randutil"
	"github.com/lox/scorekeeper/internal/validate"
)

// setupPrompter collects the pre-game choices on plain stdin before the
// alternate-screen TUI takes over.
type setupPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newSetupPrompter() *setupPrompter {
	return &setupPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (s *setupPrompter) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *setupPrompter) confirm(prompt string) (bool, error) {
	for {
		answer, err := s.ask(prompt + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.out, "Please answer y or n.")
	}
}

func (s *setupPrompter) askPlayerCount(allowed []int) (int, error) {
	labels := make([]string, len(allowed))
	for i, n := range allowed {
		labels[i] = strconv.Itoa(n)
	}

	for {
		answer, err := s.ask(fmt.Sprintf("Number of players (%s): ", strings.Join(labels, "/")))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			for _, a := range allowed {
				if n == a {
					return n, nil
				}
			}
		}
		fmt.Fprintf(s.out, "Choose one of: %s\n", strings.Join(labels, ", "))
	}
}

// pick lets the user take the suggested option (first free) or choose
// another by number, the same auto-suggest-but-overridable behavior the
// setup screen of the original board has.
func (s *setupPrompter) pick(what string, free []string) (string, error) {
	for i, option := range free {
		fmt.Fprintf(s.out, "  %d: %s\n", i+1, option)
	}

	for {
		answer, err := s.ask(fmt.Sprintf("%s [%s]: ", what, free[0]))
		if err != nil {
			return "", err
		}
		if answer == "" {
			return free[0], nil
		}
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(free) {
			return free[idx-1], nil
		}
		for _, option := range free {
			if strings.EqualFold(option, answer) {
				return option, nil
			}
		}
		fmt.Fprintf(s.out, "Pick a number between 1 and %d.\n", len(free))
	}
}

func (s *setupPrompter) askName(taken map[string]bool) (string, error) {
	for {
		answer, err := s.ask("Name: ")
		if err != nil {
			return "", err
		}

		name, verr := validate.SanitizeName(answer)
		switch {
		case errors.Is(verr, validate.ErrEmptyName):
			fmt.Fprintln(s.out, "Please enter a name.")
			continue
		case errors.Is(verr, validate.ErrNameTooLong):
			fmt.Fprintf(s.out, "Names are limited to %d characters.\n", validate.MaxNameLength)
			continue
		case verr != nil:
			return "", verr
		}

		if taken[strings.ToLower(name)] {
			fmt.Fprintln(s.out, "That name is already taken.")
			continue
		}
		return name, nil
	}
}

// runSetup walks through the whole pre-game flow: player count, names,
// colors, icons, optional shuffle and the score-table preference.
func runSetup(cfg *config.Config) ([]*game.Player, bool, error) {
	prompter := newSetupPrompter()

	count, err := prompter.askPlayerCount(cfg.PlayerCounts)
	if err != nil {
		return nil, false, err
	}

	freeColors := append([]string(nil), cfg.Palette...)
	freeIcons := append([]string(nil), cfg.Icons...)
	takenNames := make(map[string]bool)

	entries := make([]game.SetupEntry, 0, count)
	for i := 0; i < count; i++ {
		fmt.Fprintf(prompter.out, "\nPlayer %d\n", i+1)

		name, err := prompter.askName(takenNames)
		if err != nil {
			return nil, false, err
		}
		takenNames[strings.ToLower(name)] = true

		color, err := prompter.pick("Color", freeColors)
		if err != nil {
			return nil, false, err
		}
		freeColors = remove(freeColors, color)

		icon, err := prompter.pick("Icon", freeIcons)
		if err != nil {
			return nil, false, err
		}
		freeIcons = remove(freeIcons, icon)

		entries = append(entries, game.SetupEntry{Name: name, Color: color, Icon: icon})
	}

	players, err := game.NewRoster(entries, cfg.PlayerCounts)
	if err != nil {
		return nil, false, err
	}

	shuffle, err := prompter.confirm("\nShuffle the turn order?")
	if err != nil {
		return nil, false, err
	}
	if shuffle {
		game.Shuffle(players, randutil.New(time.Now().UnixNano()))
	}

	showScores, err := prompter.confirm("Show scores during the game?")
	if err != nil {
		return nil, false, err
	}

	return players, showScores, nil
}

func remove(values []string, value string) []string {
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
