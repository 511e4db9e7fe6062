// Package repository maps catalog records to SQLite rows.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/elections/internal/election"
)

// Executor is satisfied by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ElectionRepo handles elections and their rounds.
type ElectionRepo struct {
	db Executor
}

func NewElectionRepo(db Executor) *ElectionRepo { return &ElectionRepo{db: db} }

// Insert writes e and its rounds. sortOrder keeps the catalog order
// stable across reads. An id already present is an error.
func (r *ElectionRepo) Insert(ctx context.Context, e election.Record, sortOrder int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO elections(id, type, name, description, rounds, previous_election, date_fixation, mode_scrutin, details_scrutin, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Type, e.Name, e.Description, e.Rounds,
		nullable(e.PreviousElection), nullable(e.DateFixation), nullable(e.ModeScrutin), nullable(e.DetailsScrutin),
		sortOrder)
	if err != nil {
		return fmt.Errorf("insert election %s: %w", e.ID, err)
	}
	for _, rd := range e.Dates {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO election_rounds(election_id, round, date, is_date_fixed) VALUES (?, ?, ?, ?)
		`, e.ID, rd.Round, rd.Date.String(), rd.IsDateFixed); err != nil {
			return fmt.Errorf("insert round %s/%d: %w", e.ID, rd.Round, err)
		}
	}
	return nil
}

// List returns every election with its rounds, in catalog order.
func (r *ElectionRepo) List(ctx context.Context) ([]election.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, type, name, description, rounds, previous_election, date_fixation, mode_scrutin, details_scrutin
	FROM elections ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []election.Record
	index := map[string]int{}
	for rows.Next() {
		var e election.Record
		var previous, fixation, mode, details sql.NullString
		if err := rows.Scan(&e.ID, &e.Type, &e.Name, &e.Description, &e.Rounds, &previous, &fixation, &mode, &details); err != nil {
			return nil, err
		}
		e.PreviousElection = previous.String
		e.DateFixation = fixation.String
		e.ModeScrutin = mode.String
		e.DetailsScrutin = details.String
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRounds(ctx, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ElectionRepo) attachRounds(ctx context.Context, out []election.Record, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `SELECT election_id, round, date, is_date_fixed FROM election_rounds ORDER BY election_id, round`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, date string
			rd       election.RoundDate
		)
		if err := rows.Scan(&id, &rd.Round, &date, &rd.IsDateFixed); err != nil {
			return err
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		rd.Date, err = election.ParseCivilDate(date)
		if err != nil {
			return fmt.Errorf("election %s round %d: %w", id, rd.Round, err)
		}
		out[i].Dates = append(out[i].Dates, rd)
	}
	return rows.Err()
}

func (r *ElectionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elections`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteAll removes every election; rounds cascade.
func (r *ElectionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM election_rounds`); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM elections`)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
