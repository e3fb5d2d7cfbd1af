package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/db"
)

// InitState describes what first run setup still has to create, and the
// course layout the new sheet will use.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string

	Course   string
	FirstTee string
	LastTee  string
	TeeTimes int
}

// DetectInitState reports which of the config file and the database are
// missing for cfg.
func DetectInitState(cfg *config.Config) (InitState, error) {
	state := InitState{
		ConfigPath: config.DefaultConfigPath(),
		DBPath:     cfg.Storage.DBPath,
		Course:     cfg.Course.Name,
		FirstTee:   cfg.Course.FirstTee,
		LastTee:    cfg.Course.LastTee,
		TeeTimes:   len(cfg.TeeTimes()),
	}

	var err error
	if state.ConfigMissing, err = missing(state.ConfigPath); err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	if state.DBMissing, err = missing(state.DBPath); err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}
	state.NeedsInit = state.ConfigMissing || state.DBMissing
	return state, nil
}

// missing treats an empty path as missing so setup reports it.
func missing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

// initializeStorage writes the default config and opens the sheet database.
// On success the model is ready to load its first sheet.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
		m.initState.ConfigMissing = false
	}

	if m.repo == nil {
		repo, err := db.Open(m.initState.DBPath)
		if err != nil {
			return m, fmt.Errorf("initializing tee sheet: %w", err)
		}
		m.setRepo(repo)
	}
	m.initState.DBMissing = false
	m.initState.NeedsInit = false
	return m, nil
}
