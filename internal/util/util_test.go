package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[]`)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))

	_, err = os.Stat(TempPath(path))
	require.True(t, os.IsNotExist(err))
}

func TestCleanupTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(TempPath(path), []byte("partial"), 0644))

	CleanupTempFile(path)

	_, err := os.Stat(TempPath(path))
	require.True(t, os.IsNotExist(err))
}

func TestHuman(t *testing.T) {
	require.Equal(t, "512 B", Human(512))
	require.Equal(t, "1.50 KB", Human(1536))
	require.Equal(t, "2.00 MB", Human(2<<20))
}

func TestJoinCookies(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(file, []byte("\n  session=abc\nignored=1\n"), 0644))

	require.Equal(t, "a=1; session=abc", joinCookies("a=1", file))
	require.Equal(t, "session=abc", joinCookies("", file))
	require.Equal(t, "a=1", joinCookies(" a=1 ", ""))
}

func TestHTTPClientSetsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:   5 * time.Second,
		UserAgent: "legalinfo-test",
		Headers: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
			"Referer":         "https://www.law.cornell.edu/",
			"X-Empty":         "",
		},
		Cookie: "k=v",
	})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "legalinfo-test", got.Get("User-Agent"))
	require.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
	require.Equal(t, "https://www.law.cornell.edu/", got.Get("Referer"))
	require.Equal(t, "k=v", got.Get("Cookie"))
	require.Empty(t, got.Get("X-Empty"))
}

func TestHTTPClientInsecureSkipVerify(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	strict, err := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)
	_, err = strict.Get(srv.URL)
	require.Error(t, err)

	lax, err := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second, InsecureSkipVerify: true})
	require.NoError(t, err)
	resp, err := lax.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
}

func TestPlural(t *testing.T) {
	require.Equal(t, "1 title", Plural(1, "title"))
	require.Equal(t, "0 titles", Plural(0, "title"))
	require.Equal(t, "54 titles", Plural(54, "title"))
}
