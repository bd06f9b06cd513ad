package main

import (
	"errors"

	"github.com/lox/scorekeeper/cmd/scorekeeper/shared"
	"github.com/lox/scorekeeper/internal/config"
	"github.com/lox/scorekeeper/internal/game"
	"github.com/lox/scorekeeper/internal/store"
	"github.com/lox/scorekeeper/internal/tui"
)

// PlayCmd sets up a fresh roster and runs the game board.
type PlayCmd struct {
	Config string `kong:"default='~/.scorekeeper/config.hcl',type='path',help='Path to config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	players, showScores, err := runSetup(cfg)
	if err != nil {
		return err
	}

	st := store.New(cfg.SavePath, shared.SetupStoreLogger(cfg.LogLevel),
		store.WithRetentionCap(cfg.RetentionCap))

	ctrl, err := game.StartSession(players, showScores, st, logger)
	if err != nil {
		var serr *store.StorageError
		if !errors.As(err, &serr) {
			return err
		}
		logger.Warn("game will run unpersisted", "err", err)
	}

	logger.Info("starting game", "id", ctrl.Session().ID, "players", len(players))
	return tui.Run(ctrl, logger)
}
