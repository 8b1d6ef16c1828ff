package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-cafe/seat-guess/internal/guess"
	"github.com/golang-cafe/seat-guess/internal/otp"
	"github.com/golang-cafe/seat-guess/internal/participant"
	"github.com/golang-cafe/seat-guess/internal/server"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

const (
	flashCode        = "code"
	flashSalt        = "salt"
	flashParticipant = "participant"

	msgGenericFailure = "รหัสไม่ถูกต้อง หรือเลือกผู้สมัครผิดคน"
)

type formValues struct {
	Participant string
	Code        string
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(r.FormValue(key)))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// userError maps service errors to a status and a message safe to show.
// Wrong candidate, wrong extra secret and malformed codes share one message.
func userError(err error, min, max int) (int, string) {
	switch errors.Cause(err) {
	case guess.ErrUnknownParticipant:
		return http.StatusBadRequest, "กรุณาเลือกชื่อผู้เล่น"
	case guess.ErrUnknownCandidate:
		return http.StatusBadRequest, "กรุณาเลือกผู้สมัคร"
	case guess.ErrGuessOutOfRange:
		return http.StatusBadRequest, fmt.Sprintf("จำนวนที่นั่งต้องอยู่ระหว่าง %d ถึง %d", min, max)
	case guess.ErrInvalidExtra:
		return http.StatusBadRequest, "รหัสลับเพิ่มเติมต้องเป็นตัวเลข"
	case guess.ErrSecurityOptionUnmet:
		return http.StatusForbidden, "ผู้เล่นนี้ต้องใช้รหัสลับเพิ่มเติม"
	case guess.ErrNoGuess:
		return http.StatusNotFound, "ผู้เล่นนี้ยังไม่ได้ทาย"
	case guess.ErrCodeMismatch, guess.ErrImplausible, otp.ErrInvalidFormat:
		return http.StatusUnprocessableEntity, msgGenericFailure
	default:
		return http.StatusInternalServerError, "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"
	}
}

func guessPageData(title, active string, form formValues) map[string]interface{} {
	return map[string]interface{}{
		"Title":        title,
		"ActivePage":   active,
		"Participants": participant.Roster,
		"Candidates":   guess.Candidates,
		"Form":         form,
	}
}

func IndexPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := guessPageData("ทายที่นั่ง", "home", formValues{})
		sess, err := svr.Session(r)
		if err != nil {
			svr.Log(err, "unable to decode session cookie")
		}
		if sess != nil {
			if codes := sess.Flashes(flashCode); len(codes) > 0 {
				data["Code"] = codes[0]
			}
			if salts := sess.Flashes(flashSalt); len(salts) > 0 {
				data["Salt"] = salts[0]
			}
			if names := sess.Flashes(flashParticipant); len(names) > 0 {
				data["IssuedTo"] = names[0]
			}
			if err := sess.Save(r, w); err != nil {
				svr.Log(err, "unable to save session")
			}
		}
		if err := svr.Render(w, http.StatusOK, "index.html", data); err != nil {
			svr.Log(err, "unable to render index page")
		}
	}
}

func SubmitGuessHandler(svr server.Server, svc *guess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := guess.SubmitRequest{
			Participant: formValue(r, "participant"),
			Candidate:   formValue(r, "candidate"),
			Extra:       formValue(r, "extra"),
		}
		min, max := svc.Range()
		fail := func(status int, msg string) {
			if wantsJSON(r) {
				svr.JSON(w, status, map[string]string{"error": msg})
				return
			}
			data := guessPageData("ทายที่นั่ง", "home", formValues{Participant: rq.Participant})
			data["Error"] = msg
			if err := svr.Render(w, status, "index.html", data); err != nil {
				svr.Log(err, "unable to render index page")
			}
		}
		n, err := strconv.Atoi(formValue(r, "guess"))
		if err != nil {
			fail(http.StatusBadRequest, fmt.Sprintf("จำนวนที่นั่งต้องอยู่ระหว่าง %d ถึง %d", min, max))
			return
		}
		rq.Guess = n
		sealed, err := svc.Submit(rq)
		if err != nil {
			status, msg := userError(err, min, max)
			if status == http.StatusInternalServerError {
				svr.Log(err, fmt.Sprintf("unable to submit guess for %s", rq.Participant))
			}
			fail(status, msg)
			return
		}
		if err := svr.CacheDelete(server.CacheKeyLeaderboard); err != nil {
			svr.Log(err, "unable to invalidate leaderboard cache")
		}
		if wantsJSON(r) {
			svr.JSON(w, http.StatusCreated, map[string]string{
				"participant": rq.Participant,
				"code":        sealed.Code,
				"salt":        sealed.Salt,
			})
			return
		}
		sess, err := svr.Session(r)
		if err != nil {
			svr.Log(err, "unable to decode session cookie")
		}
		if sess != nil {
			sess.AddFlash(sealed.Code, flashCode)
			sess.AddFlash(sealed.Salt, flashSalt)
			sess.AddFlash(rq.Participant, flashParticipant)
			if err := sess.Save(r, w); err != nil {
				svr.Log(err, "unable to save issued code into session")
			}
		}
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func VerifyPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := guessPageData("ตรวจสอบรหัส", "verify", formValues{
			Participant: r.URL.Query().Get("p"),
		})
		if err := svr.Render(w, http.StatusOK, "verify.html", data); err != nil {
			svr.Log(err, "unable to render verify page")
		}
	}
}

func PostVerifyHandler(svr server.Server, svc *guess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := guess.VerifyRequest{
			Participant: formValue(r, "participant"),
			Candidate:   formValue(r, "candidate"),
			Extra:       formValue(r, "extra"),
			Code:        formValue(r, "code"),
		}
		respond := func(status int, res guess.VerifyResult, msg string) {
			if wantsJSON(r) {
				if msg != "" {
					svr.JSON(w, status, map[string]string{"error": msg})
					return
				}
				svr.JSON(w, status, map[string]interface{}{"participant": res.Participant.Name, "guess": res.Guess})
				return
			}
			data := guessPageData("ตรวจสอบรหัส", "verify", formValues{Participant: rq.Participant, Code: rq.Code})
			if msg != "" {
				data["Error"] = msg
			} else {
				data["Verified"] = true
				data["Guess"] = res.Guess
			}
			if err := svr.Render(w, status, "verify.html", data); err != nil {
				svr.Log(err, "unable to render verify page")
			}
		}
		if svr.SeenSince(r, "verify", svr.GetConfig().VerifyThrottle) {
			respond(http.StatusTooManyRequests, guess.VerifyResult{}, "กรุณารอสักครู่แล้วลองใหม่")
			return
		}
		res, err := svc.Verify(rq)
		if err != nil {
			min, max := svc.Range()
			status, msg := userError(err, min, max)
			if status == http.StatusInternalServerError {
				svr.Log(err, fmt.Sprintf("unable to verify guess for %s", rq.Participant))
			}
			respond(status, guess.VerifyResult{}, msg)
			return
		}
		respond(http.StatusOK, res, "")
	}
}

// RevealHandler decodes an arbitrary code with an explicit salt. The result is
// not range checked.
func RevealHandler(svr server.Server, svc *guess.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svr.SeenSince(r, "reveal", svr.GetConfig().VerifyThrottle) {
			svr.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			return
		}
		q := r.URL.Query()
		n, err := svc.Reveal(q.Get("code"), q.Get("candidate"), q.Get("salt"), q.Get("extra"))
		if err != nil {
			min, max := svc.Range()
			status, msg := userError(err, min, max)
			svr.JSON(w, status, map[string]string{"error": msg})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]int{"guess": n})
	}
}
