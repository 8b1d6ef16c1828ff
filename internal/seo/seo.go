package seo

import (
	"bytes"
	"time"

	"github.com/snabb/sitemap"
)

// StaticPages lists the public paths worth indexing, relative to the site root.
func StaticPages() []string {
	return []string{
		"",
		"verify",
		"leaderboard",
		"event",
	}
}

// Sitemap renders a sitemap for StaticPages under baseURL, which must end
// with a slash. The leaderboard changes with every guess, the rest rarely.
func Sitemap(baseURL string, lastMod time.Time) ([]byte, error) {
	sm := sitemap.New()
	for _, p := range StaticPages() {
		freq := sitemap.Weekly
		if p == "leaderboard" {
			freq = sitemap.Hourly
		}
		lm := lastMod
		sm.Add(&sitemap.URL{
			Loc:        baseURL + p,
			LastMod:    &lm,
			ChangeFreq: freq,
		})
	}
	buf := new(bytes.Buffer)
	if _, err := sm.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
