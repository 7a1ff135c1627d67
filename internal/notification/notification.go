package notification

import (
	"context"
	"log/slog"
)

// KindFormSubmitted is sent once a draft passes validation and is submitted.
const KindFormSubmitted = "form_submitted"

// Message describes a notification about a form draft.
type Message struct {
	Kind    string
	DraftID string
	// Recipient is the respondent's name as entered on the form.
	Recipient string
	Summary   string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger. It stands in
// for an e-mail or messaging channel.
type LoggerNotifier struct {
	logger *slog.Logger
}

func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send logs the message. A nil notifier or logger drops it.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.InfoContext(ctx, "notification",
		slog.String("kind", message.Kind),
		slog.String("draft_id", message.DraftID),
		slog.String("recipient", message.Recipient),
		slog.String("summary", message.Summary),
	)
	return nil
}
