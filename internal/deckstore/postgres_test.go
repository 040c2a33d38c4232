package deckstore

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/mohammad-safakhou/notescan/models"
)

func TestPostgresSaveAndGet(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	backend := &PostgresBackend{DB: db}

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	deck := &models.SlideDeck{
		ID:        "11111111-1111-1111-1111-111111111111",
		CreatedAt: created,
		Slides: []models.Slide{
			{Index: 1, Text: "Mitosis has four phases."},
			{Index: 2, Text: ""},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO decks`).
		WithArgs(deck.ID, created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slides`).
		WithArgs(deck.ID, 1, "Mitosis has four phases.").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slides`).
		WithArgs(deck.ID, 2, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := backend.Save(context.Background(), deck); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	mock.ExpectQuery(`SELECT id, created_at FROM decks`).
		WithArgs(deck.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(deck.ID, created))
	mock.ExpectQuery(`SELECT page_index, text FROM slides`).
		WithArgs(deck.ID).
		WillReturnRows(sqlmock.NewRows([]string{"page_index", "text"}).
			AddRow(1, "Mitosis has four phases.").
			AddRow(2, ""))

	got, err := backend.Get(context.Background(), deck.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Slides) != 2 || got.Slides[0].Text != "Mitosis has four phases." {
		t.Fatalf("unexpected deck: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetNotFound(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	backend := &PostgresBackend{DB: db}

	mock.ExpectQuery(`SELECT id, created_at FROM decks`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	_, err = backend.Get(context.Background(), "missing")
	if !errors.Is(err, models.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestPostgresSaveRollsBackOnSlideError(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	backend := &PostgresBackend{DB: db}

	deck := &models.SlideDeck{
		ID:        "22222222-2222-2222-2222-222222222222",
		CreatedAt: time.Now().UTC(),
		Slides:    []models.Slide{{Index: 1, Text: "x"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO decks`).
		WithArgs(deck.ID, deck.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slides`).
		WithArgs(deck.ID, 1, "x").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if err := backend.Save(context.Background(), deck); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
