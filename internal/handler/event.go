package handler

import (
	"net/http"
	"net/url"

	"github.com/golang-cafe/seat-guess/internal/config"
	"github.com/golang-cafe/seat-guess/internal/server"
)

// calendarURL builds a Google Calendar "add event" link.
func calendarURL(cfg config.Config) string {
	details := cfg.EventDescription
	if cfg.EventMapURL != "" {
		details += " Map: " + cfg.EventMapURL
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", cfg.EventTitle)
	q.Set("dates", cfg.EventStartsAt.UTC().Format("20060102T150405Z")+"/"+cfg.EventEndsAt.UTC().Format("20060102T150405Z"))
	q.Set("ctz", cfg.EventTimezone)
	q.Set("location", cfg.EventVenue)
	q.Set("details", details)
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

func EventPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := svr.GetConfig()
		err := svr.Render(w, http.StatusOK, "event.html", map[string]interface{}{
			"Title":            "Event",
			"ActivePage":       "event",
			"EventTitle":       cfg.EventTitle,
			"EventVenue":       cfg.EventVenue,
			"EventStartsAt":    cfg.EventStartsAt,
			"EventDescription": svr.MarkdownToHTML(cfg.EventDescription),
			"EventMapURL":      cfg.EventMapURL,
			"CalendarURL":      calendarURL(cfg),
		})
		if err != nil {
			svr.Log(err, "unable to render event page")
		}
	}
}
