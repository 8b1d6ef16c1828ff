package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	stdtemplate "html/template"

	"github.com/golang-cafe/seat-guess/internal/config"
	"github.com/golang-cafe/seat-guess/internal/middleware"
	"github.com/golang-cafe/seat-guess/internal/template"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	CacheKeyLeaderboard = "leaderboard"

	sessionName = "____sg"
)

type Server struct {
	cfg          config.Config
	Conn         *sql.DB
	router       *mux.Router
	tmpl         *template.Template
	SessionStore *sessions.CookieStore
	bigCache     *bigcache.BigCache
	logger       zerolog.Logger
}

func NewServer(
	cfg config.Config,
	conn *sql.DB,
	r *mux.Router,
	t *template.Template,
	sessionStore *sessions.CookieStore,
) Server {
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
	}
	lifeWindow := cfg.LeaderboardCacheTTL
	if cfg.VerifyThrottle > lifeWindow {
		lifeWindow = cfg.VerifyThrottle
	}
	if lifeWindow <= 0 {
		lifeWindow = time.Minute
	}
	bigCache, err := bigcache.NewBigCache(bigcache.DefaultConfig(lifeWindow))
	svr := Server{
		cfg:          cfg,
		Conn:         conn,
		router:       r,
		tmpl:         t,
		SessionStore: sessionStore,
		bigCache:     bigCache,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger(),
	}
	if err != nil {
		svr.Log(err, "unable to initialise big cache")
	}

	return svr
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) RegisterPathPrefix(path string, handler http.Handler, methods []string) {
	s.router.PathPrefix(path).Handler(handler).Methods(methods...)
}

func (s Server) MarkdownToHTML(str string) stdtemplate.HTML {
	return s.tmpl.MarkdownToHTML(str)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) Render(w http.ResponseWriter, status int, htmlView string, data interface{}) error {
	dataMap := make(map[string]interface{}, 0)
	if data != nil {
		dataMap = data.(map[string]interface{})
	}
	dataMap["SiteName"] = s.GetConfig().SiteName
	dataMap["SiteHost"] = s.GetConfig().SiteHost
	dataMap["URLProtocol"] = s.GetConfig().URLProtocol
	dataMap["GuessMin"] = s.GetConfig().GuessMin
	dataMap["GuessMax"] = s.GetConfig().GuessMax

	return s.tmpl.Render(w, status, htmlView, dataMap)
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) XML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	w.Write(data)
}

func (s Server) TEXT(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

func (s Server) Redirect(w http.ResponseWriter, r *http.Request, status int, dst string) {
	http.Redirect(w, r, dst, status)
}

// Session returns the visitor's cookie session. A cookie that no longer
// decodes yields a fresh session.
func (s Server) Session(r *http.Request) (*sessions.Session, error) {
	return s.SessionStore.Get(r, sessionName)
}

// Handler returns the router wrapped in the middleware chain used by Run.
func (s Server) Handler() http.Handler {
	return middleware.HTTPSMiddleware(
		middleware.LoggingMiddleware(
			middleware.HeadersMiddleware(s.router, s.cfg.Env),
			s.logger,
		),
		s.cfg.Env,
	)
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return []byte{}, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Set(key, val)
}

func (s Server) CacheDelete(key string) error {
	if s.bigCache == nil {
		return nil
	}
	err := s.bigCache.Delete(key)
	if err == bigcache.ErrEntryNotFound {
		return nil
	}
	return err
}

// SeenSince reports whether the client behind r already hit the scope within
// timeAgo, and records the current hit when it did not.
func (s Server) SeenSince(r *http.Request, scope string, timeAgo time.Duration) bool {
	if s.bigCache == nil {
		return false
	}
	key := scope + ":" + ClientIP(r)
	now := time.Now()
	lastSeen, err := s.bigCache.Get(key)
	if err == bigcache.ErrEntryNotFound {
		s.bigCache.Set(key, []byte(now.Format(time.RFC3339Nano)))
		return false
	}
	if err != nil {
		return false
	}
	lastSeenTime, err := time.Parse(time.RFC3339Nano, string(lastSeen))
	if err != nil || !lastSeenTime.After(now.Add(-timeAgo)) {
		s.bigCache.Set(key, []byte(now.Format(time.RFC3339Nano)))
		return false
	}

	return true
}

// ClientIP prefers the first x-forwarded-for hop and falls back to the
// connection's remote address.
func ClientIP(r *http.Request) string {
	ips := strings.Split(r.Header.Get("x-forwarded-for"), ",")
	if ip := strings.TrimSpace(ips[0]); ip != "" {
		return ip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
