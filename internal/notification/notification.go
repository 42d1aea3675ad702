package notification

import (
    "context"
    "log/slog"
    "sync"
)

const (
    // KindAccountCreated is sent once a registration completes.
    KindAccountCreated = "account_created"
)

// Message describes a notification payload.
type Message struct {
    Kind        string
    Destination string
    Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
    Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
    logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
    return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
    if n == nil || n.logger == nil {
        return nil
    }
    n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
    return nil
}

// Outbox keeps sent messages in memory.
type Outbox struct {
    mu       sync.Mutex
    messages []Message
}

// Send appends message to the outbox.
func (o *Outbox) Send(_ context.Context, message Message) error {
    o.mu.Lock()
    defer o.mu.Unlock()
    o.messages = append(o.messages, message)
    return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
    o.mu.Lock()
    defer o.mu.Unlock()
    out := make([]Message, len(o.messages))
    copy(out, o.messages)
    return out
}
