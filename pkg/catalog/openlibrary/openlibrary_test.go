package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "https://covers.example"), &hits
}

func TestSearchNormalizesDocs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"numFound":2,"docs":[
			{"title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,"cover_i":123},
			{"author_name":["A","B"]}
		]}`)
	})

	books, err := client.Search(context.Background(), "dune")

	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, Year(1965), books[0].Year)
	require.NotNil(t, books[0].Cover)
	assert.Equal(t, "https://covers.example/b/id/123-M.jpg", *books[0].Cover)

	assert.Equal(t, UnknownTitle, books[1].Title)
	assert.Equal(t, "A, B", books[1].Author)
	assert.Nil(t, books[1].Cover)
}

func TestSearchJSONShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"docs":[{"title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,"cover_i":123},{"title":"Untitled"}]}`)
	})

	books, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)

	out, err := json.Marshal(books)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"title":"Dune","author":"Frank Herbert","year":1965,"cover":"https://covers.example/b/id/123-M.jpg"},
		{"title":"Untitled","author":"Unknown Author","year":"Unknown Year","cover":null}
	]`, string(out))

	var back []Book
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, books, back)
}

func TestSearchCapsAtTen(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		docs := make([]string, 15)
		for i := range docs {
			docs[i] = fmt.Sprintf(`{"title":"Book %d"}`, i)
		}
		fmt.Fprintf(w, `{"docs":[%s]}`, strings.Join(docs, ","))
	})

	books, err := client.Search(context.Background(), "many")

	require.NoError(t, err)
	assert.Len(t, books, ResultLimit)
}

func TestSearchZeroDocsIsEmptyList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"numFound":0,"docs":[]}`)
	})

	books, err := client.Search(context.Background(), "zzzzqqq")

	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestSearchBlankQuerySkipsNetwork(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	books, err := client.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestSearchUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: "HTTP 503",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
			wantErr: "parsing open library response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, hits := newTestClient(t, tt.handler)

			_, err := client.Search(context.Background(), "dune")

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, int32(1), atomic.LoadInt32(hits), "no retry")
		})
	}
}

func TestCoverURLDefaultBase(t *testing.T) {
	assert.Equal(t, "https://covers.openlibrary.org/b/id/7-M.jpg", CoverURL("", 7))
}
