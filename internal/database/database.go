package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS participant (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	name VARCHAR(64) NOT NULL UNIQUE,
// 	hash CHAR(6) DEFAULT NULL,
// 	salt CHAR(6) DEFAULT NULL,
// 	security_option BOOLEAN NOT NULL DEFAULT FALSE,
// 	extended BOOLEAN NOT NULL DEFAULT FALSE,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP DEFAULT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX IF NOT EXISTS participant_created_at_idx ON participant (created_at);
var schema = []string{
	`CREATE TABLE IF NOT EXISTS participant (
		id CHAR(27) NOT NULL UNIQUE,
		name VARCHAR(64) NOT NULL UNIQUE,
		hash CHAR(6) DEFAULT NULL,
		salt CHAR(6) DEFAULT NULL,
		security_option BOOLEAN NOT NULL DEFAULT FALSE,
		extended BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP DEFAULT NULL,
		PRIMARY KEY(id)
	)`,
	`ALTER TABLE participant ADD COLUMN IF NOT EXISTS extended BOOLEAN NOT NULL DEFAULT FALSE`,
	`CREATE INDEX IF NOT EXISTS participant_created_at_idx ON participant (created_at)`,
}

// GetDbConn tries to establish a connection to postgres and return the connection handler
func GetDbConn(databaseUser string, databasePassword string, databaseHost string, databasePort string, databaseName string, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

// EnsureSchema creates the participant table when missing.
func EnsureSchema(conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return errors.Wrap(err, "unable to apply schema")
		}
	}
	return nil
}
