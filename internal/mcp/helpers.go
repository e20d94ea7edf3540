package mcpserver

import (
	"fmt"

	"pagebuilder/internal/domain"
)

// requireString returns a non-empty string argument.
func requireString(args map[string]any, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func getString(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// getInt reads a JSON number as an int.
func getInt(args map[string]any, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func getBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// requireEntityType parses an entity type argument.
func requireEntityType(args map[string]any, key string) (domain.EntityType, error) {
	v, err := requireString(args, key)
	if err != nil {
		return domain.EntityNone, err
	}
	t := domain.EntityType(v)
	if !t.Valid() {
		return domain.EntityNone, fmt.Errorf("%s must be one of section, row, column, component", key)
	}
	return t, nil
}
