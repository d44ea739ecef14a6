package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocsShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape Shape
		wantCount int
	}{
		{"nested", `{"responseHeader":{},"response":{"numFound":1,"docs":[{"title":"A"}]}}`, ShapeNested, 1},
		{"flat", `{"docs":[{"title":"A"},{"title":"B"}]}`, ShapeFlat, 2},
		{"bare list", `[{"title":"A"},{"title":"B"},{"title":"C"}]`, ShapeList, 3},
		{"nested wins over flat", `{"response":{"docs":[{"title":"A"}]},"docs":[{"title":"B"},{"title":"C"}]}`, ShapeNested, 1},
		{"response without docs falls through to flat", `{"response":{"numFound":0},"docs":[{"title":"B"}]}`, ShapeFlat, 1},
		{"empty nested", `{"response":{"docs":[]}}`, ShapeNested, 0},
		{"non-object entries skipped", `[{"title":"A"}, "junk", 4, null]`, ShapeList, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, shape, err := ParseDocs([]byte(tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)
			assert.Len(t, docs, tt.wantCount)
		})
	}
}

func TestParseDocsUnknownShape(t *testing.T) {
	for _, body := range []string{`{}`, `{"items":[]}`, `{"response":"nope"}`, ``, `   `} {
		_, _, err := ParseDocs([]byte(body))
		assert.ErrorIs(t, err, ErrUnknownShape, body)
	}
}

func TestParseDocsInvalidJSON(t *testing.T) {
	_, _, err := ParseDocs([]byte(`<html>busy</html>`))
	assert.Error(t, err)
}

func TestRawDocText(t *testing.T) {
	docs, _, err := ParseDocs([]byte(`[{
		"title": "Plain",
		"creator": ["Ada", "Grace"],
		"date": 1999,
		"description": ["first", "second"],
		"subject": null
	}]`))
	require.NoError(t, err)
	d := docs[0]

	assert.Equal(t, "Plain", d.Text("title", ", ", "x"))
	assert.Equal(t, "Ada, Grace", d.Text("creator", ", ", "x"))
	assert.Equal(t, "1999", d.Text("date", ", ", "x"))
	assert.Equal(t, "first second", d.Text("description", " ", "x"))
	assert.Equal(t, "fallback", d.Text("subject", " ", "fallback"))
	assert.Equal(t, "fallback", d.Text("missing", " ", "fallback"))
}
