package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pacgen/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadRemote(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("server=/example.com/114.114.114.114\n"))
	}))
	defer srv.Close()

	f := New(&config.FetchConfig{TimeoutSeconds: 5, UserAgent: "pacgen-test"})
	content, err := f.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "server=/example.com/114.114.114.114\n", content)
	assert.Equal(t, "pacgen-test", gotUA)
}

func TestDownloadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(nil)
	_, err := f.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDownloadRejectsInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 0x00, 'a'})
	}))
	defer srv.Close()

	_, err := New(nil).Download(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotUTF8)
}

func TestDownloadStripsBOM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(append([]byte{0xEF, 0xBB, 0xBF}, "IP-CIDR,10.0.0.0/8\n"...))
	}))
	defer srv.Close()

	content, err := New(nil).Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "IP-CIDR,10.0.0.0/8\n", content)
}

func TestDownloadSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 1024*1024+1)))
	}))
	defer srv.Close()

	f := New(&config.FetchConfig{MaxSizeMB: 1})
	_, err := f.Download(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDownloadExactlyAtSizeLimit(t *testing.T) {
	body := strings.Repeat("a", 1024*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	content, err := New(&config.FetchConfig{MaxSizeMB: 1}).Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, content, len(body))
}

func TestDownloadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.conf")
	require.NoError(t, os.WriteFile(path, []byte("server=/a.com/1.1.1.1\n"), 0644))

	f := New(nil)

	content, err := f.Download(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "server=/a.com/1.1.1.1\n", content)

	content, err = f.Download(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "server=/a.com/1.1.1.1\n", content)

	content, err = f.Download(context.Background(), "FILE://"+path)
	require.NoError(t, err)
	assert.Equal(t, "server=/a.com/1.1.1.1\n", content)
}

func TestDownloadSchemeIsCaseInsensitive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("IP-CIDR,10.0.0.0/8\n"))
	}))
	defer srv.Close()

	f := New(&config.FetchConfig{TimeoutSeconds: 5})
	upper := "HTTP://" + strings.TrimPrefix(srv.URL, "http://")

	content, err := f.Download(context.Background(), upper)
	require.NoError(t, err)
	assert.Equal(t, "IP-CIDR,10.0.0.0/8\n", content)
}

func TestDownloadLocalFileNamedLikeHTTP(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "httpfoo.list"), []byte("IP-CIDR,1.0.0.0/8\n"), 0644))
	t.Chdir(dir)

	f := New(&config.FetchConfig{TimeoutSeconds: 1})
	content, err := f.Download(context.Background(), "httpfoo.list")
	require.NoError(t, err)
	assert.Equal(t, "IP-CIDR,1.0.0.0/8\n", content)
}

func TestFetchReturnsEmptyOnFailure(t *testing.T) {
	f := New(nil)
	content, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.list"))
	assert.Error(t, err)
	assert.Equal(t, "", content)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	content, err = f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Equal(t, "", content)
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("IP-CIDR,10.0.0.0/8\n"))
	}))
	defer srv.Close()

	content, err := New(nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "IP-CIDR,10.0.0.0/8\n", content)
}

func TestFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil).Download(ctx, srv.URL)
	assert.Error(t, err)
}
