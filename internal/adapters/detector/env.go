// Package detector selects how command output is rendered.
package detector

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode is the rendering mode for command output.
type OutputMode int

const (
	// ModeAuto picks pretty or plain from the environment.
	ModeAuto OutputMode = iota
	// ModePretty renders colored tables.
	ModePretty
	// ModePlain renders tables without color.
	ModePlain
	// ModeJSON renders machine-readable JSON.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectEnvironment returns ModePlain when stdout is not a terminal or a CI
// environment is detected, and ModePretty otherwise.
func DetectEnvironment() OutputMode {
	ci := os.Getenv("CI")
	if !isTerminal() || ci == "true" || ci == "1" {
		return ModePlain
	}
	return ModePretty
}

// ParseMode converts a flag value into an OutputMode.
func ParseMode(flag string) (OutputMode, error) {
	switch strings.ToLower(flag) {
	case "", "auto":
		return ModeAuto, nil
	case "pretty", "tty":
		return ModePretty, nil
	case "plain", "ci", "text":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidParam, "unknown output mode"), "output", flag)
	}
}

// ResolveMode applies a user override to the detected mode.
func ResolveMode(autoDetected, override OutputMode) OutputMode {
	if override == ModeAuto {
		return autoDetected
	}
	return override
}

// Profile returns the color profile selector for mode.
func Profile(mode OutputMode) func() termenv.Profile {
	if mode == ModePretty {
		return output.ColorProfile
	}
	return output.Plain
}
