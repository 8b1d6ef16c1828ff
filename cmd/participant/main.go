package main

import (
	"flag"
	"log"

	"github.com/golang-cafe/seat-guess/internal/config"
	"github.com/golang-cafe/seat-guess/internal/database"
	"github.com/golang-cafe/seat-guess/internal/participant"
)

func main() {
	name := flag.String("name", "", "participant to update")
	secure := flag.Bool("secure", false, "require an extra secret for -name")
	seed := flag.Bool("seed", false, "insert every roster member without a guess")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config %v", err)
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
		log.Fatalf("unable to apply schema: %v", err)
	}
	repo := participant.NewRepository(conn)

	if *seed {
		n, err := repo.Seed(participant.Roster)
		if err != nil {
			log.Fatalf("unable to seed participants: %v", err)
		}
		log.Printf("seeded %d participants\n", n)
	}
	if *name == "" {
		return
	}
	if !participant.InRoster(*name) {
		log.Fatalf("%s is not in the roster", *name)
	}
	if err := repo.SetSecurityOption(*name, *secure); err != nil {
		log.Fatalf("unable to update %s: %v", *name, err)
	}
	log.Printf("security option for %s set to %v\n", *name, *secure)
}
