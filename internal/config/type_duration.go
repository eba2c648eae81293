package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Число и суффикс s, m, h или d. Число без суффикса: секунды.
var typeDurationShortRegexp = regexp.MustCompile(`^(\d+)([smhd]?)$`)

var typeDurationMultipliers = map[string]time.Duration{
	"":  time.Second,
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// TypeDuration is an interval. 0 is a meaningful value so Get falls back
// to default only if a value was never set.
type TypeDuration struct {
	Value time.Duration
	isSet bool
}

func (t *TypeDuration) Set(value string) error {
	value = strings.TrimSpace(value)

	if groups := typeDurationShortRegexp.FindStringSubmatch(value); groups != nil {
		number, err := strconv.ParseUint(groups[1], 10, 32) //nolint: gomnd
		if err != nil {
			return fmt.Errorf("incorrect duration (%s): %w", value, err)
		}

		t.Value = time.Duration(number) * typeDurationMultipliers[groups[2]]
		t.isSet = true

		return nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("incorrect duration (%s): %w", value, err)
	}

	if parsed < 0 {
		return fmt.Errorf("duration should be non-negative (%s)", value)
	}

	t.Value = parsed
	t.isSet = true

	return nil
}

func (t TypeDuration) Get(defaultValue time.Duration) time.Duration {
	if !t.isSet {
		return defaultValue
	}

	return t.Value
}

func (t *TypeDuration) UnmarshalJSON(data []byte) error {
	return t.Set(strings.Trim(string(data), `"`))
}

func (t TypeDuration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t TypeDuration) String() string {
	return t.Value.String()
}
