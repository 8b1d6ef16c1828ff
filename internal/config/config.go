package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/golang-cafe/seat-guess/internal/otp"

	"github.com/pkg/errors"
)

type Config struct {
	Port                string
	DatabaseUser        string
	DatabasePassword    string
	DatabaseHost        string
	DatabasePort        string
	DatabaseName        string
	DatabaseSSLMode     string
	SessionKey          []byte
	SentryDSN           string        // optional, errors are only logged locally when empty
	Env                 string        // either prod or dev, will disable https and few other bits
	SiteName            string        // shown in the navbar and page titles
	SiteHost            string        // site hostname
	URLProtocol         string        // derived from Env
	GuessMin            int           // lowest accepted guess, also the lower plausibility bound on verify
	GuessMax            int           // highest accepted guess, also the upper plausibility bound on verify
	VerifyThrottle      time.Duration // minimum delay between two verify attempts from the same ip
	LeaderboardCacheTTL time.Duration // how long the rendered participant list is kept in memory
	EventTitle          string
	EventVenue          string
	EventStartsAt       time.Time
	EventEndsAt         time.Time
	EventDescription    string // markdown
	EventMapURL         string
	EventTimezone       string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, fmt.Errorf("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, fmt.Errorf("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, fmt.Errorf("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, fmt.Errorf("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		return Config{}, fmt.Errorf("DATABASE_SSL_MODE cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		siteName = "ทายที่นั่ง"
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	guessMin, err := intOrDefault("GUESS_MIN", 0)
	if err != nil {
		return Config{}, err
	}
	guessMax, err := intOrDefault("GUESS_MAX", 500)
	if err != nil {
		return Config{}, err
	}
	if guessMin < 0 || guessMax < guessMin {
		return Config{}, fmt.Errorf("invalid guess range [%d, %d]", guessMin, guessMax)
	}
	if guessMax > otp.MaxValue {
		return Config{}, fmt.Errorf("GUESS_MAX cannot exceed %d", otp.MaxValue)
	}
	verifyThrottle, err := durationOrDefault("VERIFY_THROTTLE", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	leaderboardCacheTTL, err := durationOrDefault("LEADERBOARD_CACHE_TTL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	eventTimezone := os.Getenv("EVENT_TIMEZONE")
	if eventTimezone == "" {
		eventTimezone = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(eventTimezone)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to load event timezone %s", eventTimezone)
	}
	eventStartsAt, err := timeOrDefault("EVENT_STARTS_AT", "2026-03-01T18:00", loc)
	if err != nil {
		return Config{}, err
	}
	eventEndsAt, err := timeOrDefault("EVENT_ENDS_AT", "2026-03-01T21:00", loc)
	if err != nil {
		return Config{}, err
	}
	eventTitle := os.Getenv("EVENT_TITLE")
	if eventTitle == "" {
		eventTitle = "🍊 Dinner"
	}
	eventVenue := os.Getenv("EVENT_VENUE")
	if eventVenue == "" {
		eventVenue = "Slay Yuan Dusit Central Park"
	}
	eventDescription := os.Getenv("EVENT_DESCRIPTION")
	if eventDescription == "" {
		eventDescription = "Celebrate and see who is the winner of the game."
	}
	eventMapURL := os.Getenv("EVENT_MAP_URL")
	sentryDSN := os.Getenv("SENTRY_DSN")
	urlProtocol := "http://"
	if !strings.EqualFold(env, "dev") {
		urlProtocol = "https://"
	}

	return Config{
		Port:                port,
		DatabaseUser:        databaseUser,
		DatabasePassword:    databasePassword,
		DatabaseHost:        databaseHost,
		DatabasePort:        databasePort,
		DatabaseName:        databaseName,
		DatabaseSSLMode:     databaseSSLMode,
		SessionKey:          sessionKeyBytes,
		SentryDSN:           sentryDSN,
		Env:                 env,
		SiteName:            siteName,
		SiteHost:            siteHost,
		URLProtocol:         urlProtocol,
		GuessMin:            guessMin,
		GuessMax:            guessMax,
		VerifyThrottle:      verifyThrottle,
		LeaderboardCacheTTL: leaderboardCacheTTL,
		EventTitle:          eventTitle,
		EventVenue:          eventVenue,
		EventStartsAt:       eventStartsAt,
		EventEndsAt:         eventEndsAt,
		EventDescription:    eventDescription,
		EventMapURL:         eventMapURL,
		EventTimezone:       eventTimezone,
	}, nil
}

func intOrDefault(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "could not convert %s to int", key)
	}
	return n, nil
}

func durationOrDefault(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "could not parse %s as duration", key)
	}
	return d, nil
}

func timeOrDefault(key, def string, loc *time.Location) (time.Time, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", s, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "could not parse %s", key)
	}
	return t, nil
}
