package stripe

import (
	"fmt"
	"log/slog"

	stripego "github.com/stripe/stripe-go/v76"
)

// slogLeveledLogger routes stripe-go's internal logging into slog.
type slogLeveledLogger struct {
	logger *slog.Logger
}

var _ stripego.LeveledLoggerInterface = (*slogLeveledLogger)(nil)

func (l *slogLeveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "source", "stripe")
}

func (l *slogLeveledLogger) Infof(format string, v ...interface{}) {
	// stripe-go logs every request at info; keep that at debug.
	l.logger.Debug(fmt.Sprintf(format, v...), "source", "stripe")
}

func (l *slogLeveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "source", "stripe")
}

func (l *slogLeveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "source", "stripe")
}
