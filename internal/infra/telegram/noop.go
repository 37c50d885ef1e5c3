package telegram

import "log/slog"

// LogNotifier writes alerts to the log instead of a chat. Used when no
// bot token is configured, so the watcher still runs end to end in
// development.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// SendAlert logs the alert body.
func (n *LogNotifier) SendAlert(chatID int64, message string) error {
	n.log.Info("alert (telegram disabled)", "chat_id", chatID, "message", message)
	return nil
}
