package notify

import (
	"context"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

// LogNotifier delivers notices to the structured log. It stands in for a
// mail or push channel and never fails.
type LogNotifier struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, notice domain.Notice) error {
	n.logger.Info("notification",
		zap.String("task_id", notice.TaskID),
		zap.Strings("recipients", notice.Team),
		zap.String("text", notice.Text),
	)
	return nil
}
