package template

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	fsys := fstest.MapFS{
		"static/views/hello.html": &fstest.MapFile{Data: []byte(`{{ define "hello.html" }}{{ .Name }} {{ humannumber .N }} {{ upper .Code }} {{ calendardate .At }}{{ end }}`)},
	}
	tmpl := NewTemplate(fsys)
	w := httptest.NewRecorder()
	err := tmpl.Render(w, http.StatusCreated, "hello.html", map[string]interface{}{
		"Name": "<Karn>",
		"N":    12345,
		"Code": "ed03d7",
		"At":   time.Date(2026, 3, 1, 18, 0, 0, 0, time.FixedZone("ICT", 7*3600)),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "&lt;Karn&gt; 12,345 ED03D7 20260301T110000Z", w.Body.String())
}

func TestMarkdownToHTML(t *testing.T) {
	tmpl := &Template{}
	out := string(tmpl.MarkdownToHTML("**Dinner** at [map](https://maps.example/x)"))
	assert.Contains(t, out, "<strong>Dinner</strong>")
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "nofollow")
}
