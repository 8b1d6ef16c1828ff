// Package guess ties the masking codec to participant storage: it validates
// submissions, decides whether the extra secret is required and applies the
// plausibility check the codec deliberately leaves to callers.
package guess

import (
	"regexp"
	"strings"

	"github.com/golang-cafe/seat-guess/internal/otp"
	"github.com/golang-cafe/seat-guess/internal/participant"
	"github.com/pkg/errors"
)

var (
	ErrUnknownParticipant  = errors.New("unknown participant")
	ErrUnknownCandidate    = errors.New("unknown candidate")
	ErrGuessOutOfRange     = errors.New("guess out of range")
	ErrInvalidExtra        = errors.New("extra secret must be numeric")
	ErrSecurityOptionUnmet = errors.New("extra secret required")
	ErrNoGuess             = errors.New("no guess submitted yet")
	ErrCodeMismatch        = errors.New("code does not match the stored code")
	// ErrImplausible covers both a wrong candidate and a wrong extra secret,
	// the two are indistinguishable by design.
	ErrImplausible = errors.New("code incorrect or wrong candidate selected")
)

var extraRe = regexp.MustCompile(`^[0-9]{1,12}$`)

type Store interface {
	GetByName(name string) (participant.Participant, error)
	SaveGuess(name, code, salt string, extended bool) error
}

type SubmitRequest struct {
	Participant string
	Candidate   string
	Guess       int
	Extra       string
}

type VerifyRequest struct {
	Participant string
	Candidate   string
	Extra       string
	Code        string // optional, must match the stored code when set
}

type VerifyResult struct {
	Participant participant.Participant
	Guess       int
}

type Service struct {
	store    Store
	codec    *otp.Codec
	min, max int
}

func NewService(store Store, codec *otp.Codec, min, max int) *Service {
	return &Service{store: store, codec: codec, min: min, max: max}
}

func (s *Service) Range() (int, int) {
	return s.min, s.max
}

// Submit masks the guess under the chosen candidate and stores the result for
// the participant, replacing any earlier guess.
func (s *Service) Submit(rq SubmitRequest) (otp.Sealed, error) {
	if !participant.InRoster(rq.Participant) {
		return otp.Sealed{}, errors.Wrapf(ErrUnknownParticipant, "%q", rq.Participant)
	}
	if !IsCandidate(rq.Candidate) {
		return otp.Sealed{}, errors.Wrapf(ErrUnknownCandidate, "%q", rq.Candidate)
	}
	if rq.Guess < s.min || rq.Guess > s.max {
		return otp.Sealed{}, errors.Wrapf(ErrGuessOutOfRange, "%d not in [%d, %d]", rq.Guess, s.min, s.max)
	}
	secure, err := s.securityOption(rq.Participant)
	if err != nil {
		return otp.Sealed{}, err
	}
	var sealed otp.Sealed
	if secure {
		if err := validExtra(rq.Extra); err != nil {
			return otp.Sealed{}, err
		}
		sealed, err = s.codec.EncodeExtended(uint32(rq.Guess), rq.Candidate, rq.Extra)
	} else {
		sealed, err = s.codec.Encode(uint32(rq.Guess), rq.Candidate)
	}
	if err != nil {
		return otp.Sealed{}, err
	}
	if err := s.store.SaveGuess(rq.Participant, sealed.Code, sealed.Salt, secure); err != nil {
		return otp.Sealed{}, errors.Wrapf(err, "unable to save guess for %s", rq.Participant)
	}
	return sealed, nil
}

// Verify recovers a participant's stored guess. Anything outside the accepted
// guess range is reported as ErrImplausible rather than returned.
func (s *Service) Verify(rq VerifyRequest) (VerifyResult, error) {
	p, err := s.store.GetByName(rq.Participant)
	if errors.Cause(err) == participant.ErrNotFound {
		return VerifyResult{}, errors.Wrapf(ErrUnknownParticipant, "%q", rq.Participant)
	}
	if err != nil {
		return VerifyResult{}, err
	}
	if !p.HasGuess() {
		return VerifyResult{}, errors.Wrapf(ErrNoGuess, "%s", p.Name)
	}
	if strings.TrimSpace(rq.Candidate) == "" {
		return VerifyResult{}, errors.Wrap(ErrUnknownCandidate, "empty candidate")
	}
	// the mode the code was masked with wins over the current security option
	extra := ""
	if p.Extended {
		if err := validExtra(rq.Extra); err != nil {
			return VerifyResult{}, err
		}
		extra = rq.Extra
	}
	if rq.Code != "" && !strings.EqualFold(strings.TrimSpace(rq.Code), p.Hash) {
		return VerifyResult{}, ErrCodeMismatch
	}
	n, err := otp.Decode(p.Hash, otp.Input(rq.Candidate, p.Salt, extra))
	if err != nil {
		return VerifyResult{}, errors.Wrapf(err, "stored code for %s", p.Name)
	}
	if int(n) < s.min || int(n) > s.max {
		return VerifyResult{}, ErrImplausible
	}
	return VerifyResult{Participant: p, Guess: int(n)}, nil
}

// Reveal decodes a code without touching storage and without a range check.
func (s *Service) Reveal(code, candidate, salt, extra string) (int, error) {
	if candidate == "" {
		return 0, errors.Wrap(ErrUnknownCandidate, "empty candidate")
	}
	if extra != "" && !extraRe.MatchString(extra) {
		return 0, ErrInvalidExtra
	}
	n, err := otp.Decode(strings.ToLower(strings.TrimSpace(code)), otp.Input(candidate, strings.ToLower(strings.TrimSpace(salt)), extra))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Service) securityOption(name string) (bool, error) {
	p, err := s.store.GetByName(name)
	if errors.Cause(err) == participant.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "unable to load %s", name)
	}
	return p.SecurityOption, nil
}

func validExtra(extra string) error {
	if extra == "" {
		return ErrSecurityOptionUnmet
	}
	if !extraRe.MatchString(extra) {
		return ErrInvalidExtra
	}
	return nil
}
