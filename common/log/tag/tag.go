package tag

import (
	"time"

	"go.uber.org/zap"
)

// Tag is a typed key/value pair attached to log entries.
type Tag struct {
	Field zap.Field
}

// LoggingCallAtKey is reserved for the caller file/line of the log site.
const LoggingCallAtKey = "logging-call-at"

func NewStringTag(key string, value string) Tag {
	return Tag{Field: zap.String(key, value)}
}

func NewInt(key string, value int) Tag {
	return Tag{Field: zap.Int(key, value)}
}

func NewInt64(key string, value int64) Tag {
	return Tag{Field: zap.Int64(key, value)}
}

func NewBoolTag(key string, value bool) Tag {
	return Tag{Field: zap.Bool(key, value)}
}

func NewErrorTag(value error) Tag {
	// NOTE: zap already chosen "error" as key
	return Tag{Field: zap.Error(value)}
}

func NewDurationTag(key string, value time.Duration) Tag {
	return Tag{Field: zap.Duration(key, value)}
}

func NewTimeTag(key string, value time.Time) Tag {
	return Tag{Field: zap.Time(key, value)}
}
