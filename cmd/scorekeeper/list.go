package main

import (
	"fmt"
	"strings"

	"github.com/lox/scorekeeper/cmd/scorekeeper/shared"
	"github.com/lox/scorekeeper/internal/config"
	"github.com/lox/scorekeeper/internal/store"
)

// ListCmd prints saved games, newest first.
type ListCmd struct {
	All    bool   `kong:"help='Include finished games'"`
	Config string `kong:"default='~/.scorekeeper/config.hcl',type='path',help='Path to config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ListCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	st := store.New(cfg.SavePath, shared.SetupStoreLogger(cfg.LogLevel),
		store.WithRetentionCap(cfg.RetentionCap))

	sessions := st.List()
	if !c.All {
		sessions = st.Unfinished()
	}

	if len(sessions) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	for _, s := range sessions {
		state := fmt.Sprintf("round %d", s.CurrentRound)
		if s.Finished {
			state = "finished"
		}
		fmt.Printf("%s  %s  %-9s  %s\n",
			s.ID,
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
			state,
			strings.Join(s.PlayerNames(), ", "))
	}
	return nil
}
