package archive

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routes maps a request path ("/advancedsearch.php", "/search.php") to a handler.
func newArchiveServer(t *testing.T, routes map[string]http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), &hits
}

func TestSearchFirstEndpointWins(t *testing.T) {
	client, hits := newArchiveServer(t, map[string]http.HandlerFunc{
		"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "quantum", q.Get("q"))
			assert.Equal(t, "json", q.Get("output"))
			assert.Equal(t, "10", q.Get("rows"))
			assert.Equal(t, []string{"title", "creator", "date", "description"}, q["fl[]"])
			fmt.Fprint(w, `{"response":{"docs":[{"title":"Quantum Notes","creator":"Bohr","date":"1927","description":"short"}]}}`)
		},
	})

	papers, source := client.Search(context.Background(), "quantum")

	assert.Equal(t, SourceUpstream, source)
	assert.Equal(t, []Paper{{Title: "Quantum Notes", Creator: "Bohr", Date: "1927", Description: "short"}}, papers)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestSearchFallsBackToSecondEndpoint(t *testing.T) {
	var failures []string
	client, _ := newArchiveServer(t, map[string]http.HandlerFunc{
		"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"/search.php": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "quantum", r.URL.Query().Get("query"))
			fmt.Fprint(w, `[{"title":"From legacy"}]`)
		},
	})
	client.OnCandidateError = func(endpoint string, err error) {
		failures = append(failures, endpoint)
	}

	papers, source := client.Search(context.Background(), "quantum")

	assert.Equal(t, SourceUpstream, source)
	require.Len(t, papers, 1)
	assert.Equal(t, "From legacy", papers[0].Title)
	assert.Equal(t, UnknownCreator, papers[0].Creator)
	assert.Equal(t, UnknownDate, papers[0].Date)
	assert.Equal(t, NoDescription, papers[0].Description)
	assert.Equal(t, []string{"advancedsearch"}, failures)
}

func TestSearchEmptyFirstEndpointContinues(t *testing.T) {
	client, hits := newArchiveServer(t, map[string]http.HandlerFunc{
		"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response":{"docs":[]}}`)
		},
		"/search.php": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"docs":[{"title":"Second"}]}`)
		},
	})

	papers, source := client.Search(context.Background(), "q")

	assert.Equal(t, SourceUpstream, source)
	assert.Equal(t, "Second", papers[0].Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestSearchExhaustedReturnsPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]http.HandlerFunc
	}{
		{
			name: "all fail",
			routes: map[string]http.HandlerFunc{
				"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
				"/search.php":         func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `not json`) },
			},
		},
		{
			name: "all empty",
			routes: map[string]http.HandlerFunc{
				"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"response":{"docs":[]}}`) },
				"/search.php":         func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `[]`) },
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newArchiveServer(t, tt.routes)

			papers, source := client.Search(context.Background(), "marine biology")

			assert.Equal(t, SourcePlaceholder, source)
			require.Len(t, papers, 2)
			assert.Equal(t, "Research on marine biology", papers[0].Title)
			assert.Contains(t, papers[0].Description, "marine biology")
			assert.Equal(t, "Advanced Studies in marine biology", papers[1].Title)
			assert.Contains(t, papers[1].Description, "marine biology")
		})
	}
}

func TestSearchTimeoutCountsAsFailure(t *testing.T) {
	client, _ := newArchiveServer(t, map[string]http.HandlerFunc{
		"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
		"/search.php": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"title":"Fast"}]`)
		},
	})
	client.Timeout = 50 * time.Millisecond

	papers, source := client.Search(context.Background(), "q")

	assert.Equal(t, SourceUpstream, source)
	assert.Equal(t, "Fast", papers[0].Title)
}

func TestSearchBlankQuery(t *testing.T) {
	client, hits := newArchiveServer(t, nil)

	papers, source := client.Search(context.Background(), "")

	assert.Equal(t, SourceNone, source)
	assert.Empty(t, papers)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestSearchCapsAtTen(t *testing.T) {
	client, _ := newArchiveServer(t, map[string]http.HandlerFunc{
		"/advancedsearch.php": func(w http.ResponseWriter, r *http.Request) {
			docs := make([]string, 25)
			for i := range docs {
				docs[i] = fmt.Sprintf(`{"title":"Doc %d"}`, i)
			}
			fmt.Fprintf(w, `{"response":{"docs":[%s]}}`, strings.Join(docs, ","))
		},
	})

	papers, _ := client.Search(context.Background(), "q")

	assert.Len(t, papers, ResultLimit)
}

func TestTruncateDescription(t *testing.T) {
	exact := strings.Repeat("a", DescriptionLimit)
	long := strings.Repeat("b", DescriptionLimit+1)
	unicode := strings.Repeat("é", DescriptionLimit+5)

	assert.Equal(t, "short", TruncateDescription("short"))
	assert.Equal(t, exact, TruncateDescription(exact))

	got := TruncateDescription(long)
	assert.Equal(t, strings.Repeat("b", DescriptionLimit)+"...", got)
	assert.Len(t, got, DescriptionLimit+3)

	assert.Equal(t, strings.Repeat("é", DescriptionLimit)+"...", TruncateDescription(unicode))
}

func TestNormalizeTruncatesJoinedDescription(t *testing.T) {
	docs, _, err := ParseDocs([]byte(fmt.Sprintf(`[{"description":[%q,%q]}]`, strings.Repeat("x", 150), strings.Repeat("y", 150))))
	require.NoError(t, err)

	p := Normalize(docs[0])

	assert.Equal(t, DescriptionLimit+len(Ellipsis), len(p.Description))
	assert.True(t, strings.HasSuffix(p.Description, Ellipsis))
}
