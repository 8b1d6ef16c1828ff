package participant

import (
	"database/sql"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

var ErrNotFound = errors.New("participant not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) GetByName(name string) (Participant, error) {
	row := r.db.QueryRow(`SELECT id, name, hash, salt, security_option, extended, created_at, updated_at FROM participant WHERE name = $1`, name)
	p, err := scan(row)
	if err == sql.ErrNoRows {
		return Participant{}, errors.Wrapf(ErrNotFound, "name %s", name)
	}
	if err != nil {
		return Participant{}, err
	}
	return p, nil
}

// List returns every participant in sign up order.
func (r *Repository) List() ([]Participant, error) {
	participants := []Participant{}
	rows, err := r.db.Query(`SELECT id, name, hash, salt, security_option, extended, created_at, updated_at FROM participant ORDER BY created_at ASC`)
	if err != nil {
		return participants, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return participants, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return participants, err
	}
	return participants, nil
}

// SaveGuess stores code and salt for name, creating the row on first use and
// overwriting both fields afterwards. extended tells whether code was masked
// with an extra secret. Concurrent saves for the same name are last write wins.
func (r *Repository) SaveGuess(name, code, salt string, extended bool) error {
	id, err := ksuid.NewRandom()
	if err != nil {
		return err
	}
	stmt := `
		INSERT INTO participant (id, name, hash, salt, extended, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE
			SET hash = EXCLUDED.hash, salt = EXCLUDED.salt, extended = EXCLUDED.extended, updated_at = EXCLUDED.created_at`
	_, err = r.db.Exec(stmt, id.String(), name, code, salt, extended, time.Now().UTC())
	return err
}

// SetSecurityOption changes what the next submission requires. A guess already
// on record keeps the mode it was masked with.
func (r *Repository) SetSecurityOption(name string, enabled bool) error {
	id, err := ksuid.NewRandom()
	if err != nil {
		return err
	}
	stmt := `
		INSERT INTO participant (id, name, security_option, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET security_option = EXCLUDED.security_option`
	_, err = r.db.Exec(stmt, id.String(), name, enabled, time.Now().UTC())
	return err
}

// Seed inserts a row without a guess for every name not yet present.
func (r *Repository) Seed(names []string) (int, error) {
	var created int
	for _, name := range names {
		id, err := ksuid.NewRandom()
		if err != nil {
			return created, err
		}
		res, err := r.db.Exec(`INSERT INTO participant (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`, id.String(), name, time.Now().UTC())
		if err != nil {
			return created, errors.Wrapf(err, "unable to seed %s", name)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return created, err
		}
		created += int(n)
	}
	return created, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(row scanner) (Participant, error) {
	p := Participant{}
	var hash, salt sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &hash, &salt, &p.SecurityOption, &p.Extended, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}
	p.Hash = hash.String
	p.Salt = salt.String
	p.CreatedAtHumanised = humanize.Time(p.CreatedAt.UTC())
	p.ProfilePicture = ProfilePicture(p.Name)
	return p, nil
}
