package main

import (
	"fmt"

	"github.com/lox/scorekeeper/cmd/scorekeeper/shared"
	"github.com/lox/scorekeeper/internal/config"
	"github.com/lox/scorekeeper/internal/game"
	"github.com/lox/scorekeeper/internal/gameid"
	"github.com/lox/scorekeeper/internal/store"
	"github.com/lox/scorekeeper/internal/tui"
)

// ResumeCmd loads a saved game and continues it. Without an id it picks the
// most recently saved unfinished game.
type ResumeCmd struct {
	ID     string `kong:"arg,optional,help='Id of the saved game (defaults to the latest unfinished one)'"`
	Config string `kong:"default='~/.scorekeeper/config.hcl',type='path',help='Path to config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ResumeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	st := store.New(cfg.SavePath, shared.SetupStoreLogger(cfg.LogLevel),
		store.WithRetentionCap(cfg.RetentionCap))

	id := c.ID
	if id == "" {
		unfinished := st.Unfinished()
		if len(unfinished) == 0 {
			return fmt.Errorf("no unfinished games to resume")
		}
		id = unfinished[0].ID
	} else if err := gameid.Validate(id); err != nil {
		return fmt.Errorf("invalid game id: %w", err)
	}

	session, err := st.Load(id)
	if err != nil {
		return fmt.Errorf("cannot load game: %w", err)
	}
	if session.Finished {
		return fmt.Errorf("game %s is already finished", id)
	}

	logger.Info("resuming game", "id", session.ID, "round", session.CurrentRound)
	return tui.Run(game.NewController(session, st, logger), logger)
}
