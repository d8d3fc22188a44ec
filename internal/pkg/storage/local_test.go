package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("save and get with nested keys", func(t *testing.T) {
		key := "resources/abc/photo"
		require.NoError(t, store.Save(ctx, key, strings.NewReader("jpeg bytes")))

		rc, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))
	})

	t.Run("save replaces existing content", func(t *testing.T) {
		key := "resources/abc/photo"
		require.NoError(t, store.Save(ctx, key, strings.NewReader("newer bytes")))

		rc, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "newer bytes", string(data))
	})

	t.Run("get missing key is a not-found error", func(t *testing.T) {
		_, err := store.Get(ctx, "resources/none/photo")
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		key := "resources/abc/photo"
		require.NoError(t, store.Delete(ctx, key))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.Error(t, err)
	})
}
