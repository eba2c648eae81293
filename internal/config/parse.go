package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml"
)

// Parse reads TOML config. Keys are written in kebab-case
// ("chunk-size"), the tree is converted into JSON and decoded into typed
// values which validate themselves.
func Parse(rawData []byte) (*Config, error) {
	tree, err := toml.LoadBytes(rawData)
	if err != nil {
		return nil, fmt.Errorf("cannot parse toml config: %w", err)
	}

	jsonBuf := &bytes.Buffer{}

	if err := json.NewEncoder(jsonBuf).Encode(camelizeKeys(tree.ToMap())); err != nil {
		return nil, fmt.Errorf("cannot dump into interim format: %w", err)
	}

	conf := &Config{}
	decoder := json.NewDecoder(jsonBuf)

	decoder.DisallowUnknownFields()

	if err := decoder.Decode(conf); err != nil {
		return nil, fmt.Errorf("cannot parse a config: %w", err)
	}

	return conf, nil
}

func camelizeKeys(data map[string]interface{}) map[string]interface{} {
	rv := make(map[string]interface{}, len(data))

	for key, value := range data {
		if nested, ok := value.(map[string]interface{}); ok {
			value = camelizeKeys(nested)
		}

		rv[camelize(key)] = value
	}

	return rv
}

func camelize(key string) string {
	parts := strings.Split(key, "-")

	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}

	return strings.Join(parts, "")
}
