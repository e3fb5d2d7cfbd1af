package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/caddie/internal/placement"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "caddie-debug.log"

var (
	debugLog  = zerolog.Nop()
	debugFile *os.File
)

// InitDebugLogger initializes the debug logger if debug mode is enabled.
// Entries are JSON lines, one per event.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = zerolog.Nop()
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugFile = f
	debugLog = zerolog.New(f).With().Timestamp().Logger()
	debugLog.Debug().Str("event", "debug_start").Str("log_file", DebugLogPath).Send()
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile == nil {
		return
	}
	debugLog.Debug().Str("event", "debug_end").Send()
	_ = debugFile.Close()
	debugFile = nil
	debugLog = zerolog.Nop()
}

// LogKeyPress logs a keystroke.
func LogKeyPress(msg tea.KeyMsg, mode Mode) {
	debugLog.Debug().
		Str("event", "key").
		Str("key", msg.String()).
		Str("mode", mode.String()).
		Send()
}

// LogModeChange logs a mode transition.
func LogModeChange(from, to Mode, reason string) {
	debugLog.Debug().
		Str("event", "mode_change").
		Str("from", from.String()).
		Str("to", to.String()).
		Str("reason", reason).
		Send()
}

// LogPlacement logs the controller state and the validation of teeTime.
func LogPlacement(ctrl *placement.Controller, teeTime, action string) {
	e := debugLog.Debug().
		Str("event", "placement").
		Str("action", action).
		Bool("active", ctrl.Active())
	if src, ok := ctrl.Source(); ok {
		e = e.Str("placement", string(ctrl.Action())).
			Int64("source_id", src.ID).
			Str("source_tee_time", src.SourceTeeTime).
			Int("players", src.PlayerCount())
	}
	if teeTime != "" {
		result := ctrl.SlotValidation(teeTime)
		e = e.Str("tee_time", teeTime).
			Str("status", result.Status.String()).
			Int("can_fit", result.CanFit)
	}
	e.Send()
}

// LogRelocation logs the outcome of a background relocation.
func LogRelocation(seq, current int, err error) {
	e := debugLog.Debug().
		Str("event", "relocation").
		Int("seq", seq).
		Bool("stale", seq != current)
	if err != nil {
		e = e.Err(err)
	}
	e.Send()
}

// LogError logs an error with context.
func LogError(context string, err error) {
	debugLog.Error().Str("context", context).Err(err).Send()
}
