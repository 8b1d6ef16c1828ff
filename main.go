package main

import (
	"embed"
	"log"
	"net/http"

	"github.com/golang-cafe/seat-guess/internal/config"
	"github.com/golang-cafe/seat-guess/internal/database"
	"github.com/golang-cafe/seat-guess/internal/guess"
	"github.com/golang-cafe/seat-guess/internal/handler"
	"github.com/golang-cafe/seat-guess/internal/otp"
	"github.com/golang-cafe/seat-guess/internal/participant"
	"github.com/golang-cafe/seat-guess/internal/server"
	"github.com/golang-cafe/seat-guess/internal/template"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

//go:embed static/views/*.html
var views embed.FS

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	if err := database.EnsureSchema(conn); err != nil {
		log.Fatalf("unable to apply schema: %+v", err)
	}

	participantRepo := participant.NewRepository(conn)
	guessSvc := guess.NewService(participantRepo, otp.New(nil), cfg.GuessMin, cfg.GuessMax)
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		template.NewTemplate(views),
		sessionStore,
	)

	svr.RegisterPathPrefix("/s/", http.StripPrefix("/s/", http.FileServer(http.Dir("./static/assets"))), []string{"GET"})

	svr.RegisterRoute("/", handler.IndexPageHandler(svr), []string{"GET"})

	// submit guess
	svr.RegisterRoute("/x/guess", handler.SubmitGuessHandler(svr, guessSvc), []string{"POST"})

	// verify guess
	svr.RegisterRoute("/verify", handler.VerifyPageHandler(svr), []string{"GET"})
	svr.RegisterRoute("/x/verify", handler.PostVerifyHandler(svr, guessSvc), []string{"POST"})

	// leaderboard
	svr.RegisterRoute("/leaderboard", handler.LeaderboardPageHandler(svr, participantRepo), []string{"GET"})
	svr.RegisterRoute("/api/leaderboard", handler.APILeaderboardHandler(svr, participantRepo), []string{"GET"})

	// decode an arbitrary code, no range check
	svr.RegisterRoute("/api/reveal", handler.RevealHandler(svr, guessSvc), []string{"GET"})

	svr.RegisterRoute("/event", handler.EventPageHandler(svr), []string{"GET"})

	svr.RegisterRoute("/sitemap.xml", handler.SitemapHandler(svr, participantRepo), []string{"GET"})
	svr.RegisterRoute("/feed.xml", handler.FeedHandler(svr, participantRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
