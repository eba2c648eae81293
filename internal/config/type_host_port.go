package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

type TypeHostPort struct {
	Value string
	Host  string
	Port  uint
}

func (t *TypeHostPort) Set(value string) error {
	host, port, err := net.SplitHostPort(value)
	if err != nil {
		return fmt.Errorf("incorrect host:port value (%v): %w", value, err)
	}

	portValue, err := strconv.ParseUint(port, 10, 16) //nolint: gomnd
	if err != nil || portValue == 0 {
		return fmt.Errorf("incorrect port number (%v)", value)
	}

	if strings.ContainsAny(host, " /") {
		return fmt.Errorf("incorrect host (%v)", value)
	}

	t.Value = net.JoinHostPort(host, port)
	t.Host = host
	t.Port = uint(portValue)

	return nil
}

func (t TypeHostPort) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

func (t *TypeHostPort) UnmarshalText(data []byte) error {
	return t.Set(string(data))
}

func (t TypeHostPort) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeHostPort) String() string {
	return t.Value
}
