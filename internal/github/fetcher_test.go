package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/readmegen/internal/config"
	"github.com/fyrsmithlabs/readmegen/internal/source"
)

// newStubFetcher returns a Fetcher whose client talks to the given handler.
func newStubFetcher(t *testing.T, handler http.Handler) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f := NewFetcher(nil)
	f.newClient = func(ctx context.Context, token config.Secret) *gh.Client {
		client := gh.NewClient(nil)
		base, err := url.Parse(server.URL + "/")
		require.NoError(t, err)
		client.BaseURL = base
		return client
	}
	return f
}

func treeHandler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":              "widget",
			"description":       "A widget factory",
			"language":          "Python",
			"stargazers_count":  12,
			"forks_count":       3,
			"open_issues_count": 1,
			"topics":            []string{"cli", "tools"},
			"default_branch":    "main",
		})
	})
	mux.HandleFunc("/repos/acme/widget/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sha": "abc123",
			"tree": []map[string]any{
				{"path": "requirements.txt", "type": "blob"},
				{"path": "src", "type": "tree"},
				{"path": "src/main.py", "type": "blob"},
				{"path": "test_main.py", "type": "blob"},
				{"path": "Dockerfile", "type": "blob"},
			},
		})
	})
	return mux
}

func TestFetchRepository(t *testing.T) {
	f := newStubFetcher(t, treeHandler(t))

	s, err := f.FetchRepository(context.Background(), "https://github.com/acme/widget", "")
	require.NoError(t, err)

	assert.Equal(t, "widget", s.Name)
	assert.Equal(t, "A widget factory", s.Description)
	assert.Equal(t, "Python", s.Language)
	assert.Equal(t, 12, s.Stars)
	assert.Equal(t, 3, s.Forks)
	assert.Equal(t, 1, s.OpenIssues)
	assert.Equal(t, []string{"cli", "tools"}, s.Topics)
	assert.Equal(t, "acme", s.Owner)
	assert.Equal(t, "https://github.com/acme/widget", s.RepoURL)
	assert.Equal(t, "main", s.DefaultBranch)
	assert.False(t, s.Local)

	assert.Equal(t, 4, s.FileCount)
	assert.Equal(t, map[string]int{".txt": 1, ".py": 2}, s.Languages)
	assert.True(t, s.HasDependencyManifest)
	assert.True(t, s.HasContainerDefinition)
	assert.True(t, s.HasTests)
	assert.False(t, s.HasPackageManifest)
	assert.Equal(t, []string{"src"}, s.SampleDirectories)
}

func TestFetchRepository_MalformedRefFailsBeforeNetwork(t *testing.T) {
	called := false
	f := newStubFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	_, err := f.FetchRepository(context.Background(), "https://github.com/onlyowner", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrInvalidRef)
	assert.False(t, called, "no network call may happen for a malformed reference")
}

func TestFetchRepository_RemoteError(t *testing.T) {
	f := newStubFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))

	_, err := f.FetchRepository(context.Background(), "acme/missing", "")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, "Not Found", remoteErr.Message)
	assert.False(t, remoteErr.RateLimited())
}

func TestFetchRepository_RateLimitHintable(t *testing.T) {
	f := newStubFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))

	_, err := f.FetchRepository(context.Background(), "acme/widget", "")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, remoteErr.RateLimited())
	assert.Contains(t, remoteErr.Error(), "rate limit")
}

func TestFetchRepository_TransportError(t *testing.T) {
	f := NewFetcher(nil)
	f.newClient = func(ctx context.Context, token config.Secret) *gh.Client {
		client := gh.NewClient(nil)
		base, _ := url.Parse("http://127.0.0.1:1/") // nothing listens here
		client.BaseURL = base
		return client
	}

	_, err := f.FetchRepository(context.Background(), "acme/widget", "")
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestFetchRepository_SampleCaps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/big", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "big", "default_branch": "main"})
	})
	mux.HandleFunc("/repos/acme/big/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		entries := make([]map[string]any, 0, 300)
		for i := 0; i < 150; i++ {
			entries = append(entries, map[string]any{"path": fmt.Sprintf("f%d.go", i), "type": "blob"})
		}
		for i := 0; i < 80; i++ {
			entries = append(entries, map[string]any{"path": fmt.Sprintf("d%d", i), "type": "tree"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sha": "abc", "tree": entries})
	})
	f := newStubFetcher(t, mux)

	s, err := f.FetchRepository(context.Background(), "acme/big", "")
	require.NoError(t, err)

	assert.Equal(t, 150, s.FileCount)
	assert.Len(t, s.SampleFiles, 100)
	assert.Len(t, s.SampleDirectories, 50)
}

func TestFetchFileContent(t *testing.T) {
	content := strings.Repeat("x", 3000)
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/contents/main.py", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"name":     "main.py",
			"path":     "main.py",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
	f := newStubFetcher(t, mux)

	got, err := f.FetchFileContent(context.Background(), "acme", "widget", "main.py", "main", "")
	require.NoError(t, err)
	assert.Len(t, got, MaxFileContentChars)
}

func TestFetchFileContent_TruncatesOnRuneBoundary(t *testing.T) {
	// 1000 three-byte runes: a byte-wise cut at 2000 would split one in half.
	content := strings.Repeat("€", 1000)
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/contents/notes.md", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"name":     "notes.md",
			"path":     "notes.md",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
	f := newStubFetcher(t, mux)

	got, err := f.FetchFileContent(context.Background(), "acme", "widget", "notes.md", "main", "")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 1000, utf8.RuneCountInString(got))
	assert.Equal(t, content, got)
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under cap", "abc", 5, "abc"},
		{"at cap", "abcde", 5, "abcde"},
		{"over cap ascii", "abcdef", 5, "abcde"},
		{"over cap multibyte", "€€€€€€", 4, "€€€€"},
		{"mixed", "a€b€c€", 3, "a€b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestFetchFileContent_ErrorIsInspectable(t *testing.T) {
	f := newStubFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))

	got, err := f.FetchFileContent(context.Background(), "acme", "widget", "nope.py", "main", "")
	assert.Empty(t, got)
	require.Error(t, err)
	var remoteErr *RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}
