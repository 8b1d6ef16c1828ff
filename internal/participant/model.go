package participant

import (
	"time"

	"github.com/lib/pq"
)

// Participant is one identity of the game. Hash and Salt are empty until the
// first guess is submitted and are replaced on every later submission.
type Participant struct {
	ID             string
	Name           string
	Hash           string
	Salt           string
	SecurityOption bool
	// Extended records whether Hash was masked with an extra secret. It is
	// fixed at submission time and does not follow later SecurityOption changes.
	Extended       bool
	CreatedAt      time.Time
	UpdatedAt      pq.NullTime

	CreatedAtHumanised string
	ProfilePicture     string
}

func (p Participant) HasGuess() bool {
	return p.Hash != "" && p.Salt != ""
}
