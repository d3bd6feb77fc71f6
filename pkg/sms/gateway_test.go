package sms_test

import (
	"context"
	"testing"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/pkg/sms"
	"github.com/stretchr/testify/assert"
)

func TestMockGateway_Send(t *testing.T) {
	t.Run("Success after latency", func(t *testing.T) {
		gateway := sms.NewMockGateway(5 * time.Millisecond)

		start := time.Now()
		err := gateway.Send(context.Background(), "+919999999999", "Your code is 123456")

		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		gateway := sms.NewMockGateway(time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()

		err := gateway.Send(ctx, "+919999999999", "Your code is 123456")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
