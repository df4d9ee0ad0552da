package supabase_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"wardrobe-backend/internal/supabase"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "service-key", zap.NewNop())
	require.NoError(t, err)

	url := client.PublicURL("wardrobe", "user-1/12345_shirt.jpg")

	// The trailing slash on the base URL must not double up.
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/wardrobe/user-1/12345_shirt.jpg", url)
}

func TestStorageClient_UploadURLFallbackChain(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps between attempts")
	}

	// A storage API that is down for every request forces the full
	// chain: retried signed-upload calls, then the signed-URL rewrite,
	// then the hand-built upload-sign URL.
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := supabase.NewStorageClient(server.URL, "service-key", zap.NewNop())
	require.NoError(t, err)

	path := "wardrobe/user-1/12345_shirt.jpg"
	target, err := client.CreateUploadURL("wardrobe", path)

	require.NoError(t, err)
	assert.True(t, target.Manual)
	assert.Equal(t, server.URL+"/storage/v1/object/upload/sign/wardrobe/"+url.PathEscape(path), target.URL)
	// Three signed-upload attempts plus the signed-URL fallback.
	assert.GreaterOrEqual(t, requests.Load(), int32(4))
}
