package storage

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgigs/campusgigs-api/internal/config"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()

	store, err := NewDiskStore(&config.StorageConfig{
		Root:          t.TempDir(),
		SigningKey:    "test-signing-key",
		MaxUploadMB:   1,
		PublicBuckets: "avatars,portfolio",
	}, "http://localhost:8080")
	require.NoError(t, err)

	return store
}

func TestNewDiskStore(t *testing.T) {
	t.Run("requires a signing key", func(t *testing.T) {
		_, err := NewDiskStore(&config.StorageConfig{Root: t.TempDir()}, "http://localhost")

		assert.Error(t, err)
	})

	t.Run("defaults the upload limit to 10MB", func(t *testing.T) {
		store, err := NewDiskStore(&config.StorageConfig{
			Root:       t.TempDir(),
			SigningKey: "k",
		}, "http://localhost")

		require.NoError(t, err)
		assert.Equal(t, int64(10<<20), store.MaxUploadSize())
	})
}

func TestDiskStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a file", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Upload(ctx, BucketChatFiles, "3/100-report.pdf", bytes.NewReader([]byte("hello")))
		require.NoError(t, err)

		fullPath, err := store.Open(BucketChatFiles, "3/100-report.pdf")
		require.NoError(t, err)

		data, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("rejects a stream over the limit and leaves nothing behind", func(t *testing.T) {
		store := newTestStore(t)
		tooBig := bytes.Repeat([]byte("a"), (1<<20)+1)

		err := store.Upload(ctx, BucketChatFiles, "3/big.bin", bytes.NewReader(tooBig))

		assert.ErrorIs(t, err, ErrFileTooLarge)

		_, err = store.Open(BucketChatFiles, "3/big.bin")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("accepts a stream exactly at the limit", func(t *testing.T) {
		store := newTestStore(t)
		exact := bytes.Repeat([]byte("a"), 1<<20)

		err := store.Upload(ctx, BucketChatFiles, "3/exact.bin", bytes.NewReader(exact))

		assert.NoError(t, err)
	})

	t.Run("refuses traversal paths", func(t *testing.T) {
		store := newTestStore(t)

		for _, path := range []string{"../escape.txt", "/abs.txt", "a/../../b.txt", ""} {
			err := store.Upload(ctx, BucketChatFiles, path, bytes.NewReader([]byte("x")))
			assert.ErrorIs(t, err, ErrInvalidPath, path)
		}
	})
}

func TestDiskStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upload(ctx, BucketAvatars, "1/avatar.png", bytes.NewReader([]byte("png"))))

	require.NoError(t, store.Remove(ctx, BucketAvatars, "1/avatar.png"))
	assert.ErrorIs(t, store.Remove(ctx, BucketAvatars, "1/avatar.png"), ErrFileNotFound)
}

func TestDiskStore_SignedURL(t *testing.T) {
	store := newTestStore(t)

	signedURL := store.SignedURL(BucketChatFiles, "3/100-report.pdf", time.Hour)

	parsed, err := url.Parse(signedURL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(parsed.Path, "/files/chat-files/3/"), parsed.Path)

	expires := parsed.Query().Get("expires")
	signature := parsed.Query().Get("signature")
	require.NotEmpty(t, expires)
	require.NotEmpty(t, signature)

	t.Run("verifies its own output", func(t *testing.T) {
		err := store.VerifyAccess(BucketChatFiles, "3/100-report.pdf", expires, signature)
		assert.NoError(t, err)
	})

	t.Run("rejects a tampered path", func(t *testing.T) {
		err := store.VerifyAccess(BucketChatFiles, "4/other.pdf", expires, signature)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("rejects a tampered expiry", func(t *testing.T) {
		farFuture := time.Now().Add(365 * 24 * time.Hour).Unix()
		err := store.VerifyAccess(BucketChatFiles, "3/100-report.pdf",
			strconv.FormatInt(farFuture, 10), signature)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("rejects an expired link", func(t *testing.T) {
		expired := store.SignedURL(BucketChatFiles, "3/100-report.pdf", -time.Minute)
		parsed, err := url.Parse(expired)
		require.NoError(t, err)

		err = store.VerifyAccess(BucketChatFiles, "3/100-report.pdf",
			parsed.Query().Get("expires"), parsed.Query().Get("signature"))
		assert.ErrorIs(t, err, ErrURLExpired)
	})

	t.Run("rejects garbage expiry", func(t *testing.T) {
		err := store.VerifyAccess(BucketChatFiles, "3/100-report.pdf", "not-a-number", signature)
		assert.ErrorIs(t, err, ErrMalformedExpiry)
	})

	t.Run("public buckets skip verification", func(t *testing.T) {
		err := store.VerifyAccess(BucketAvatars, "1/avatar.png", "", "")
		assert.NoError(t, err)
	})
}

func TestDiskStore_PublicURL(t *testing.T) {
	store := newTestStore(t)

	publicURL := store.PublicURL(BucketAvatars, "1/avatar.png")

	parsed, err := url.Parse(publicURL)
	require.NoError(t, err)
	assert.Equal(t, "/files/avatars/1/avatar.png", parsed.Path)
	assert.NotEmpty(t, parsed.Query().Get("t"))
}

func TestDiskStore_Open(t *testing.T) {
	store := newTestStore(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Open(BucketChatFiles, "nope/missing.txt")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("traversal path", func(t *testing.T) {
		secret := filepath.Join(t.TempDir(), "secret.txt")
		require.NoError(t, os.WriteFile(secret, []byte("secret"), 0600))

		_, err := store.Open(BucketChatFiles, "../../"+secret)
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}
