package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lox/scorekeeper/cmd/scorekeeper/shared"
	"github.com/lox/scorekeeper/internal/config"
	"github.com/lox/scorekeeper/internal/gameid"
	"github.com/lox/scorekeeper/internal/store"
)

// DeleteCmd removes a saved game from the store.
type DeleteCmd struct {
	ID     string `kong:"arg,help='Id of the game to delete'"`
	Force  bool   `kong:"short='f',help='Skip confirmation'"`
	Config string `kong:"default='~/.scorekeeper/config.hcl',type='path',help='Path to config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *DeleteCmd) Run() error {
	if err := gameid.Validate(c.ID); err != nil {
		return fmt.Errorf("invalid game id %q: %w", c.ID, err)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	st := store.New(cfg.SavePath, shared.SetupStoreLogger(cfg.LogLevel),
		store.WithRetentionCap(cfg.RetentionCap))

	sess, err := st.Load(c.ID)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete game %s (%s)? [y/N] ", sess.ID, strings.Join(sess.PlayerNames(), ", "))
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := st.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.ID)
	return nil
}
