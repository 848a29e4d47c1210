package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripdraft/internal/types"
)

// PostgresStore keeps records in the trips table as JSONB documents.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, rec *Record) (types.ID, error) {
	prefs, err := json.Marshal(rec.Prefs)
	if err != nil {
		return "", fmt.Errorf("encode prefs: %w", err)
	}
	draft, err := json.Marshal(rec.Draft)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}

	id := uuid.New()
	err = s.db.QueryRow(ctx, `
		INSERT INTO trips (id, prefs, itinerary_draft, status, owner_uid, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING created_at`,
		id, prefs, draft, rec.Status, rec.OwnerUID,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert trip: %w", err)
	}
	rec.ID = types.ID(id.String())
	return rec.ID, nil
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Record, error) {
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return nil, ErrNotFound
	}

	var (
		rec          Record
		prefs, draft []byte
		owner        *string
	)
	err = s.db.QueryRow(ctx, `
		SELECT prefs, itinerary_draft, status, owner_uid, created_at
		FROM trips
		WHERE id = $1`, uid,
	).Scan(&prefs, &draft, &rec.Status, &owner, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select trip: %w", err)
	}

	if err := json.Unmarshal(prefs, &rec.Prefs); err != nil {
		return nil, fmt.Errorf("decode prefs: %w", err)
	}
	if err := json.Unmarshal(draft, &rec.Draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if owner != nil {
		rec.OwnerUID = *owner
	}
	rec.ID = types.ID(uid.String())
	return &rec, nil
}
