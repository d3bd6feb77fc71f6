package sms

import (
	"context"
	"log/slog"
	"time"
)

// Gateway delivers a text message to a phone number.
type Gateway interface {
	Send(ctx context.Context, phone, message string) error
}

// mockGateway stands in for a real SMS provider. It waits a configurable
// latency to emulate the network round trip and then reports success; the
// message is written to the log so codes are visible during development.
type mockGateway struct {
	latency time.Duration
}

func NewMockGateway(latency time.Duration) Gateway {
	return &mockGateway{latency: latency}
}

func (g *mockGateway) Send(ctx context.Context, phone, message string) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.latency):
	}

	slog.Info("📱 Mock SMS delivered", slog.String("phone", phone), slog.String("message", message))

	return nil
}
