package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pipepulse/pipepulse/sink"
)

// TypeSinkMode is a config wrapper for a report sink mode.
type TypeSinkMode struct {
	Value string
}

func (t *TypeSinkMode) Set(value string) error {
	switch mode := strings.ToLower(strings.TrimSpace(value)); mode {
	case sink.ModeTouch, sink.ModeFile, sink.ModeStderr:
		t.Value = mode
	default:
		return fmt.Errorf("unknown sink mode %q, expected one of touch, file, stderr", value)
	}

	return nil
}

// Get returns the sink mode, or default if not set.
func (t TypeSinkMode) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

// IsStream returns true if reports go to stderr.
func (t TypeSinkMode) IsStream() bool {
	return t.Value == sink.ModeStderr
}

func (t *TypeSinkMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot parse sink mode: %w", err)
	}

	return t.Set(str)
}

func (t TypeSinkMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t TypeSinkMode) String() string {
	return t.Get(sink.ModeTouch)
}
