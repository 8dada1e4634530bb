package engine

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is
var ErrConfiguration = errors.New("invalid chart configuration")

// ConfigurationError reports a geometry input the engine refuses to draw
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid chart configuration: %s=%g %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(field string, value float64, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
