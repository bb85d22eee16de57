package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldOutcome is the structured log field key for the result of a single provider attempt.
	FieldOutcome = "ai_outcome"
	// FieldLatency is the structured log field key for the duration of a single provider attempt.
	FieldLatency = "ai_latency"
	// FieldAttempt is the structured log field key for the attempt index within one call.
	FieldAttempt = "ai_attempt"
	// FieldTier is the structured log field key for the resolver tier that produced a value.
	FieldTier = "tier"
	// FieldResolutionID correlates all log entries of one field resolution.
	FieldResolutionID = "resolution_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns standard zap fields that describe the AI provider and model.
// Empty values are ignored to keep log entries compact when information is missing.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the common AI fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	fields := CommonFields(provider, model)
	return WithFields(logger, fields...)
}

// AttemptFields describes one provider attempt: its position, outcome and latency.
func AttemptFields(attempt int, outcome string, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int(FieldAttempt, attempt),
		zap.Duration(FieldLatency, latency),
	}
	return append(fields, StringFields(StringField{Key: FieldOutcome, Value: outcome})...)
}
