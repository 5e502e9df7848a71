// Package notify delivers user-facing notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type (
	Type     string
	Position string

	Notification struct {
		Type     Type     `json:"type"`
		Message  string   `json:"message"`
		Title    string   `json:"title"`
		Position Position `json:"position"`
		Icon     string   `json:"icon"`
	}

	// Sink receives notifications. Notify must not block the caller.
	Sink interface {
		Notify(n Notification)
	}
)

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"

	PositionTopRight Position = "topR"
)

// TransactionComplete is shown once an entry transaction is confirmed.
func TransactionComplete() Notification {
	return Notification{
		Type:     TypeInfo,
		Message:  "Transaction Complete!",
		Title:    "Tx Notification",
		Position: PositionTopRight,
		Icon:     "bell",
	}
}

// LogSink writes each notification as a structured log record.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	level := slog.LevelInfo
	switch n.Type {
	case TypeWarning:
		level = slog.LevelWarn
	case TypeError:
		level = slog.LevelError
	}

	s.logger.Log(context.Background(), level, n.Message,
		slog.String("title", n.Title),
		slog.String("type", string(n.Type)),
		slog.String("position", string(n.Position)),
		slog.String("icon", n.Icon),
	)
}

// Recorder keeps every notification in memory; used by the CLI to print a summary
// and by tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// Fanout forwards to every sink in order.
type Fanout []Sink

func (f Fanout) Notify(n Notification) {
	for _, sink := range f {
		sink.Notify(n)
	}
}
