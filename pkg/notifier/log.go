package notifier

import (
	"context"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

// logNotifier writes notifications to the log instead of a chat. Used when
// Telegram delivery is disabled.
type logNotifier struct {
	log logger.Interface
}

func NewLog(log logger.Interface) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) SendToUser(_ context.Context, userID string, text string) error {
	n.log.Info("notifier - user %s: %s", userID, truncate(text, 80))

	return nil
}

func (n *logNotifier) SendToAdmin(_ context.Context, text string) error {
	n.log.Info("notifier - admin: %s", truncate(text, 80))

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
