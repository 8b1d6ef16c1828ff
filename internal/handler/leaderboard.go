package handler

import (
	"bytes"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/golang-cafe/seat-guess/internal/participant"
	"github.com/golang-cafe/seat-guess/internal/server"
)

type participantLister interface {
	List() ([]participant.Participant, error)
}

type leaderboardEntry struct {
	Name           string    `json:"name"`
	Hash           *string   `json:"hash"`
	Salt           *string   `json:"salt"`
	SecurityOption bool      `json:"security_option"`
	CreatedAt      time.Time `json:"created_at"`
}

// participants serves the list from the in-memory cache when possible. Submit
// invalidates the cache key.
func participants(svr server.Server, lister participantLister) ([]participant.Participant, error) {
	if cached, ok := svr.CacheGet(server.CacheKeyLeaderboard); ok {
		var ps []participant.Participant
		dec := gob.NewDecoder(bytes.NewReader(cached))
		err := dec.Decode(&ps)
		if err == nil {
			return ps, nil
		}
		svr.Log(err, "unable to decode cached leaderboard")
	}
	ps, err := lister.List()
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(ps); err != nil {
		svr.Log(err, "unable to encode leaderboard")
		return ps, nil
	}
	if err := svr.CacheSet(server.CacheKeyLeaderboard, buf.Bytes()); err != nil {
		svr.Log(err, "unable to cache leaderboard")
	}
	return ps, nil
}

func LeaderboardPageHandler(svr server.Server, lister participantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := participants(svr, lister)
		if err != nil {
			svr.Log(err, "unable to list participants")
			svr.TEXT(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		var guessCount int
		for _, p := range ps {
			if p.HasGuess() {
				guessCount++
			}
		}
		err = svr.Render(w, http.StatusOK, "leaderboard.html", map[string]interface{}{
			"Title":        "ผลการเลือก",
			"ActivePage":   "leaderboard",
			"Participants": ps,
			"GuessCount":   guessCount,
		})
		if err != nil {
			svr.Log(err, "unable to render leaderboard page")
		}
	}
}

func APILeaderboardHandler(svr server.Server, lister participantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := participants(svr, lister)
		if err != nil {
			svr.Log(err, "unable to list participants")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
			return
		}
		entries := make([]leaderboardEntry, 0, len(ps))
		for _, p := range ps {
			e := leaderboardEntry{
				Name:           p.Name,
				SecurityOption: p.SecurityOption,
				CreatedAt:      p.CreatedAt,
			}
			if p.HasGuess() {
				hash, salt := p.Hash, p.Salt
				e.Hash, e.Salt = &hash, &salt
			}
			entries = append(entries, e)
		}
		svr.JSON(w, http.StatusOK, entries)
	}
}
