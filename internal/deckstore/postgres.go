package deckstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/mohammad-safakhou/notescan/models"
)

// PostgresBackend persists decks in Postgres. Schema lives under migrations/
// and is applied with `notescan migrate`.
type PostgresBackend struct {
	DB *sql.DB
}

// NewWithDSN opens and pings a Postgres connection.
func NewWithDSN(ctx context.Context, dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}
	return &PostgresBackend{DB: db}, nil
}

func (b *PostgresBackend) Save(ctx context.Context, deck *models.SlideDeck) error {
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO decks (id, created_at) VALUES ($1, $2)`,
		deck.ID, deck.CreatedAt); err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}
	for _, slide := range deck.Slides {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO slides (deck_id, page_index, text) VALUES ($1, $2, $3)`,
			deck.ID, slide.Index, slide.Text); err != nil {
			return fmt.Errorf("insert slide %d: %w", slide.Index, err)
		}
	}
	return tx.Commit()
}

func (b *PostgresBackend) Get(ctx context.Context, id string) (*models.SlideDeck, error) {
	var deck models.SlideDeck
	err := b.DB.QueryRowContext(ctx,
		`SELECT id, created_at FROM decks WHERE id = $1`, id).
		Scan(&deck.ID, &deck.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := b.DB.QueryContext(ctx,
		`SELECT page_index, text FROM slides WHERE deck_id = $1 ORDER BY page_index`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var slide models.Slide
		if err := rows.Scan(&slide.Index, &slide.Text); err != nil {
			return nil, err
		}
		deck.Slides = append(deck.Slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (b *PostgresBackend) Remove(ctx context.Context, id string) error {
	_, err := b.DB.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	return err
}
