package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
)

// Короткая запись размера: число и один из суффиксов b, k, M, G
// (регистр не важен). Число без суффикса: байты.
var typeBytesShortRegexp = regexp.MustCompile(`^(\d+)([bBkKmMgG]?)$`)

var typeBytesMultipliers = map[string]units.Base2Bytes{
	"":  1,
	"b": 1,
	"k": units.KiB,
	"m": units.MiB,
	"g": units.GiB,
}

type TypeBytes struct {
	Value units.Base2Bytes
	isSet bool
}

func (t *TypeBytes) Set(value string) error {
	value = strings.TrimSpace(value)

	if groups := typeBytesShortRegexp.FindStringSubmatch(value); groups != nil {
		number, err := strconv.ParseUint(groups[1], 10, 48) //nolint: gomnd
		if err != nil {
			return fmt.Errorf("incorrect size (%s): %w", value, err)
		}

		multiplier := typeBytesMultipliers[strings.ToLower(groups[2])]
		if number > uint64(math.MaxInt64/multiplier) {
			return fmt.Errorf("size is too large (%s)", value)
		}

		t.Value = units.Base2Bytes(number) * multiplier
		t.isSet = true

		return nil
	}

	parsed, err := units.ParseBase2Bytes(value)
	if err != nil {
		return fmt.Errorf("incorrect size (%s): %w", value, err)
	}

	if parsed < 0 {
		return fmt.Errorf("size should be non-negative (%s)", value)
	}

	t.Value = parsed
	t.isSet = true

	return nil
}

func (t TypeBytes) Get(defaultValue uint) uint {
	if !t.isSet {
		return defaultValue
	}

	return uint(t.Value)
}

func (t *TypeBytes) UnmarshalJSON(data []byte) error {
	return t.Set(strings.Trim(string(data), `"`))
}

func (t TypeBytes) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t TypeBytes) String() string {
	return t.Value.String()
}
