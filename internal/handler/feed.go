package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-cafe/seat-guess/internal/seo"
	"github.com/golang-cafe/seat-guess/internal/server"

	"github.com/gorilla/feeds"
)

func baseURL(svr server.Server) string {
	cfg := svr.GetConfig()
	return cfg.URLProtocol + cfg.SiteHost + "/"
}

func verifyLink(base, name string) string {
	return base + "verify?p=" + url.QueryEscape(name)
}

func SitemapHandler(svr server.Server, lister participantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastMod := time.Now().UTC().Truncate(24 * time.Hour)
		ps, err := participants(svr, lister)
		if err != nil {
			svr.Log(err, "unable to list participants for sitemap")
		}
		for _, p := range ps {
			if p.UpdatedAt.Valid && p.UpdatedAt.Time.After(lastMod) {
				lastMod = p.UpdatedAt.Time
			}
		}
		out, err := seo.Sitemap(baseURL(svr), lastMod)
		if err != nil {
			svr.Log(err, "unable to render sitemap")
			svr.TEXT(w, http.StatusInternalServerError, "unable to render sitemap")
			return
		}
		svr.XML(w, http.StatusOK, out)
	}
}

// FeedHandler publishes one RSS item per participant who has a guess on
// record, newest first. Only public values are included.
func FeedHandler(svr server.Server, lister participantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := participants(svr, lister)
		if err != nil {
			svr.Log(err, "unable to retrieve participants for RSS feed")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		cfg := svr.GetConfig()
		feed := &feeds.Feed{
			Title:       cfg.SiteName,
			Link:        &feeds.Link{Href: baseURL(svr) + "leaderboard"},
			Description: cfg.EventTitle,
			Created:     time.Now(),
		}
		for i := len(ps) - 1; i >= 0; i-- {
			p := ps[i]
			if !p.HasGuess() {
				continue
			}
			created := p.CreatedAt
			if p.UpdatedAt.Valid {
				created = p.UpdatedAt.Time
			}
			feed.Items = append(feed.Items, &feeds.Item{
				Title:       fmt.Sprintf("%s locked in a guess", p.Name),
				Link:        &feeds.Link{Href: verifyLink(baseURL(svr), p.Name)},
				Description: fmt.Sprintf("code %s, salt %s", p.Hash, p.Salt),
				Id:          p.ID,
				Created:     created,
			})
		}
		rss, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		svr.XML(w, http.StatusOK, []byte(rss))
	}
}
