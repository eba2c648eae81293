package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TypeReportPath is a path of a report file. The file itself may be
// absent but its directory must exist.
type TypeReportPath struct {
	Value string
}

func (t *TypeReportPath) Set(value string) error {
	if value == "" {
		return fmt.Errorf("path is empty")
	}

	absPath, err := filepath.Abs(value)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path (%s): %w", value, err)
	}

	if stat, err := os.Stat(absPath); err == nil && stat.IsDir() {
		return fmt.Errorf("value is correct filepath but directory (%s)", value)
	}

	stat, err := os.Stat(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("cannot access parent directory (%s): %w", value, err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("parent is not a directory (%s)", value)
	}

	t.Value = absPath

	return nil
}

func (t TypeReportPath) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

func (t *TypeReportPath) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot parse path: %w", err)
	}

	return t.Set(str)
}

func (t TypeReportPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

func (t TypeReportPath) String() string {
	return t.Value
}
