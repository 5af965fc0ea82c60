package log

import (
	"github.com/RedRem95/DelayObject/common/log/tag"
)

type (
	// Logger is the logging interface.
	// Usage example:
	//  logger.Info("task scheduled",
	//          tag.ScheduledDelay(delay),
	//          tag.ReadyTime(readyAt),
	//  )
	// Note: msg should be static, do not use fmt.Sprintf() for msg.
	// Anything dynamic should be tagged.
	Logger interface {
		Debug(msg string, tags ...tag.Tag)
		Info(msg string, tags ...tag.Tag)
		Warn(msg string, tags ...tag.Tag)
		Error(msg string, tags ...tag.Tag)
	}

	// WithLogger is implemented by loggers that can return a child logger
	// with prepended tags.
	WithLogger interface {
		With(tags ...tag.Tag) Logger
	}
)

// With returns a logger that prepends the given tags to every log entry.
func With(logger Logger, tags ...tag.Tag) Logger {
	if wl, ok := logger.(WithLogger); ok {
		return wl.With(tags...)
	}
	return &prependLogger{logger: logger, tags: tags}
}

type prependLogger struct {
	logger Logger
	tags   []tag.Tag
}

func (l *prependLogger) prepend(tags []tag.Tag) []tag.Tag {
	return append(l.tags[:len(l.tags):len(l.tags)], tags...)
}

func (l *prependLogger) Debug(msg string, tags ...tag.Tag) {
	l.logger.Debug(msg, l.prepend(tags)...)
}

func (l *prependLogger) Info(msg string, tags ...tag.Tag) {
	l.logger.Info(msg, l.prepend(tags)...)
}

func (l *prependLogger) Warn(msg string, tags ...tag.Tag) {
	l.logger.Warn(msg, l.prepend(tags)...)
}

func (l *prependLogger) Error(msg string, tags ...tag.Tag) {
	l.logger.Error(msg, l.prepend(tags)...)
}
