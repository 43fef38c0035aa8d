package res

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantMime string
		wantData string
		wantType ResourceType
		wantErr  bool
	}{
		{
			name:     "base64 png",
			url:      "data:image/png;base64,aGVsbG8=",
			wantMime: "image/png",
			wantData: "hello",
			wantType: ResourceTypeImage,
		},
		{
			name:     "escaped svg",
			url:      "data:image/svg+xml,%3Csvg%3E%3C%2Fsvg%3E",
			wantMime: "image/svg+xml",
			wantData: "<svg></svg>",
			wantType: ResourceTypeImage,
		},
		{
			name:     "default mime",
			url:      "data:,plain",
			wantMime: "application/octet-stream",
			wantData: "plain",
			wantType: ResourceTypeOther,
		},
		{name: "missing comma", url: "data:image/png;base64", wantErr: true},
		{name: "bad base64", url: "data:image/png;base64,***", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseDataURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, res.MimeType)
			assert.Equal(t, tt.wantData, res.GetString())
			assert.Equal(t, tt.wantType, res.Type)
		})
	}
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "code.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644))

	ctx := context.Background()

	t.Run("relative to base", func(t *testing.T) {
		loader := NewLoader(filepath.Join(dir, "page.html"))
		res, err := loader.LoadImage(ctx, "code.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", res.MimeType)
		assert.Equal(t, "png-bytes", res.GetString())
	})

	t.Run("search path fallback", func(t *testing.T) {
		loader := NewLoader("")
		loader.AddSearchPath(dir)
		res, err := loader.LoadImage(ctx, "missing/dir/code.png")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "code.png"), res.URL)
	})

	t.Run("not an image", func(t *testing.T) {
		loader := NewLoader("")
		_, err := loader.LoadImage(ctx, filepath.Join(dir, "notes.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an image")
	})

	t.Run("not found", func(t *testing.T) {
		loader := NewLoader("")
		_, err := loader.Load(ctx, filepath.Join(dir, "nope.png"))
		require.Error(t, err)
	})

	t.Run("cached", func(t *testing.T) {
		path := filepath.Join(dir, "code.png")
		loader := NewLoader("")
		first, err := loader.Load(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))
		second, err := loader.Load(ctx, path)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/codes/a.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("remote-png"))
		case "/codes/b.svg":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("<svg/>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	loader := NewLoader(server.URL + "/codes/index.html")
	loader.SetHTTPClient(server.Client())

	res, err := loader.LoadImage(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "remote-png", res.GetString())
	assert.Equal(t, server.URL+"/codes/a.png", res.URL)

	res, err = loader.LoadImage(ctx, server.URL+"/codes/b.svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", res.MimeType)

	_, err = loader.Load(ctx, "missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadRemoteHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader("").Load(ctx, server.URL+"/a.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSizeLimit(t *testing.T) {
	big := bytes.Repeat([]byte("q"), 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		switch r.URL.Path {
		case "/sized.png":
			_, _ = w.Write(big)
		case "/streamed.png":
			// flushing first drops Content-Length and forces a chunked body
			_, _ = w.Write(big[:8])
			w.(http.Flusher).Flush()
			_, _ = w.Write(big[8:])
		case "/small.png":
			_, _ = w.Write(big[:16])
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.png"), big, 0o644))

	ctx := context.Background()
	newLoader := func() *Loader {
		loader := NewLoader("")
		loader.SetHTTPClient(server.Client())
		loader.SetMaxSize(16)
		return loader
	}

	tests := []struct {
		name     string
		ref      string
		wantSize int64
	}{
		{name: "declared length", ref: server.URL + "/sized.png", wantSize: 64},
		{name: "chunked body", ref: server.URL + "/streamed.png", wantSize: -1},
		{name: "local file", ref: filepath.Join(dir, "big.png"), wantSize: 64},
		{name: "data url", ref: "data:image/png," + string(big), wantSize: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader().LoadImage(ctx, tt.ref)
			var tooLarge *TooLargeError
			require.True(t, errors.As(err, &tooLarge), "got %v", err)
			assert.Equal(t, int64(16), tooLarge.Limit)
			assert.Equal(t, tt.wantSize, tooLarge.Size)
		})
	}

	t.Run("search path", func(t *testing.T) {
		loader := newLoader()
		loader.AddSearchPath(dir)
		_, err := loader.LoadImage(ctx, "elsewhere/big.png")
		var tooLarge *TooLargeError
		require.True(t, errors.As(err, &tooLarge), "got %v", err)
	})

	t.Run("exact fit", func(t *testing.T) {
		res, err := newLoader().LoadImage(ctx, server.URL+"/small.png")
		require.NoError(t, err)
		assert.Len(t, res.Data, 16)
	})

	t.Run("unlimited", func(t *testing.T) {
		loader := NewLoader("")
		loader.SetHTTPClient(server.Client())
		res, err := loader.LoadImage(ctx, server.URL+"/streamed.png")
		require.NoError(t, err)
		assert.Len(t, res.Data, 64)
	})
}
