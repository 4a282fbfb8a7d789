package imagestore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	obj, err := store.Put(ctx, "items/a/1.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, int64(9), obj.Size)
	require.NotEmpty(t, obj.ETag)

	rc, mime, err := store.Get(ctx, "items/a/1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
	require.Equal(t, "image/png", mime)

	require.NoError(t, store.Delete(ctx, "items/a/1.png"))
	_, _, err = store.Get(ctx, "items/a/1.png")
	require.Error(t, err)
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"https://acct.r2.cloudflarestorage.com/bucket": "acct.r2.cloudflarestorage.com",
		"http://localhost:9000":                        "localhost:9000",
		" minio:9000 ":                                 "minio:9000",
		"":                                             "",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeEndpoint(in), in)
	}
}
