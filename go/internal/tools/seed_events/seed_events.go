package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scotty-olympics/olympics/go/internal/dbconfig"
)

// Event is one entry of the event catalogue.
type Event struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
}

// Participant is a pre-invited participant.
type Participant struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type catalogue struct {
	Events       []Event       `json:"events"`
	Participants []Participant `json:"participants"`
}

type counts struct {
	total, inserted, skipped, errs int
}

func (c *counts) record(rowsAffected int64, err error) {
	c.total++
	switch {
	case err != nil:
		c.errs++
	case rowsAffected == 1:
		c.inserted++
	default:
		c.skipped++
	}
}

func main() {
	path := flag.String("file", "go/internal/assets/events.json", "path to the event catalogue")
	flag.Parse()

	// 1) Load the JSON catalogue
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var cat catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert, leaving existing rows untouched
	var events, participants counts
	for _, e := range cat.Events {
		tag, err := pool.Exec(ctx, `
            INSERT INTO events (id, name, description, display_order)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (name) DO NOTHING
        `, uuid.New(), e.Name, e.Description, e.DisplayOrder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting event %q: %v\n", e.Name, err)
		}
		events.record(tag.RowsAffected(), err)
	}

	for _, p := range cat.Participants {
		tag, err := pool.Exec(ctx, `
            INSERT INTO participants (id, name, email, is_admin)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (email) DO NOTHING
        `, uuid.New(), p.Name, p.Email, p.IsAdmin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting participant %q: %v\n", p.Email, err)
		}
		participants.record(tag.RowsAffected(), err)
	}

	// 4) Print summary
	fmt.Printf(
		"Events seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		events.total, events.inserted, events.skipped, events.errs,
	)
	fmt.Printf(
		"Participants seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		participants.total, participants.inserted, participants.skipped, participants.errs,
	)
}
