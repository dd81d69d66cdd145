package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"cat.png":             "cat.png",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\dog.jpg`: "dog.jpg",
		"my photo (1).jpeg":   "my_photo_1_.jpeg",
		"...":                 "upload",
		"":                    "upload",
	}
	for in, want := range cases {
		assert.Equal(t, want, SecureFilename(in), in)
	}
}

func TestNewKey(t *testing.T) {
	now := time.Unix(1751700000, 0)
	k1 := NewKey("a b.png", now)
	k2 := NewKey("a b.png", now)
	assert.True(t, strings.HasPrefix(k1, "1751700000_"))
	assert.True(t, strings.HasSuffix(k1, "_a_b.png"))
	assert.NotEqual(t, k1, k2)
	assert.True(t, validKey(k1))
}

func TestDiskStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(ctx, "cat.png", []byte("pixels"), "image/png")
	require.NoError(t, err)

	data, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Load(ctx, key)
	assert.Error(t, err)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(context.Background(), ""), ErrInvalidKey)
}
