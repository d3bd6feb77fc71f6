package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Key Found", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectGet("cart:u1").SetVal(`{"lines":[]}`)

		value, found, err := store.Get(ctx, "cart:u1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"lines":[]}`, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Key Missing", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectGet("missing").RedisNil()

		_, found, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectGet("k").SetErr(errors.New("connection refused"))

		_, found, err := store.Get(ctx, "k")
		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestRedisStore_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - With TTL", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectSet("otp:+919999999999", "payload", 10*time.Minute).SetVal("OK")

		err := store.Set(ctx, "otp:+919999999999", "payload", 10*time.Minute)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No TTL", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectSet("users", "{}", 0).SetVal("OK")

		assert.NoError(t, store.Set(ctx, "users", "{}", 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectSet("k", "v", time.Duration(0)).SetErr(errors.New("readonly replica"))

		assert.Error(t, store.Set(ctx, "k", "v", 0))
	})
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectDel("otp:+919999999999").SetVal(1)

		assert.NoError(t, store.Delete(ctx, "otp:+919999999999"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectDel("k").SetErr(errors.New("connection refused"))

		assert.Error(t, store.Delete(ctx, "k"))
	})
}
