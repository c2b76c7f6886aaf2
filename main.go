package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptran/pastel-priority/internal/app"
	"github.com/ptran/pastel-priority/internal/clock"
	"github.com/ptran/pastel-priority/internal/credential"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/session"
	"github.com/ptran/pastel-priority/internal/store"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	s, err := buildSession(db, cfg)
	if err != nil {
		fmt.Printf("failed to restore state: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(app.New(s, *cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// buildSession restores the persisted snapshot when one exists. With no
// snapshot, a remembered email skips the sign-in screen.
func buildSession(db *store.SQLiteStore, cfg *model.AppConfig) (*session.Session, error) {
	snap, found, err := db.LoadSnapshot()
	if err != nil {
		return nil, err
	}

	c := clock.System{}
	if found {
		return session.Restore(snap, c, db), nil
	}

	s := session.New(c, db)
	if cfg.RememberUser {
		if email := credential.RememberedUser(); email != "" {
			if _, err := s.Resume(email); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
