package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/birdling/internal/learning"
)

// ModeFlag selects the game mode of a practice session.
type ModeFlag learning.GameMode

func (m *ModeFlag) Set(val string) error {
	mode := learning.GameMode(val)
	if !mode.Valid() {
		return fmt.Errorf("invalid value %q, valid values are %q or %q", val, learning.ModeRecall, learning.ModeRecognition)
	}
	*m = ModeFlag(mode)
	return nil
}

func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

func (m *ModeFlag) Type() string {
	return "mode"
}

func (m ModeFlag) GameMode() learning.GameMode {
	return learning.GameMode(m)
}

// FormatFlag selects how a command prints its result.
type FormatFlag string

const (
	FormatText FormatFlag = "text"
	FormatJSON FormatFlag = "json"
	FormatYAML FormatFlag = "yaml"
)

func (f *FormatFlag) Set(val string) error {
	switch FormatFlag(val) {
	case FormatText, FormatJSON, FormatYAML:
		*f = FormatFlag(val)
		return nil
	}
	return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", val, FormatText, FormatJSON, FormatYAML)
}

func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func (f *FormatFlag) Type() string {
	return "format"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
	_ pflag.Value = (*FormatFlag)(nil)
)
