package template

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	stdtemplate "html/template"

	humanize "github.com/dustin/go-humanize"
	blackfriday "gopkg.in/russross/blackfriday.v2"
)

type Template struct {
	templates *stdtemplate.Template
}

// NewTemplate parses every view under static/views of fsys.
func NewTemplate(fsys fs.FS) *Template {
	funcMap := stdtemplate.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"humantime": humanize.Time,
		"humannumber": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"isTimeBeforeNow": func(t time.Time) bool {
			return t.Before(time.Now())
		},
		"upper": strings.ToUpper,
		"calendardate": func(t time.Time) string {
			return t.UTC().Format("20060102T150405Z")
		},
		"eventdate": func(t time.Time) string {
			return t.Format("Monday 2 January 2006, 15:04")
		},
	}
	return &Template{
		templates: stdtemplate.Must(stdtemplate.New("stdtmpl").Funcs(funcMap).ParseFS(fsys, "static/views/*.html")),
	}
}

func (t *Template) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.templates.ExecuteTemplate(w, name, data)
}

func (t *Template) MarkdownToHTML(s string) stdtemplate.HTML {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink |
			blackfriday.NofollowLinks |
			blackfriday.NoreferrerLinks |
			blackfriday.HrefTargetBlank,
	})
	return stdtemplate.HTML(blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer)))
}
