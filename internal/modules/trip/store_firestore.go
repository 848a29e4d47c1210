package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tripdraft/internal/types"
)

// FirestoreCollection holds one document per trip.
const FirestoreCollection = "trip"

// FirestoreStore writes records as documents keyed by Firestore's generated id.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Save(ctx context.Context, rec *Record) (types.ID, error) {
	doc, err := toDocument(rec)
	if err != nil {
		return "", err
	}
	doc["createdAt"] = firestore.ServerTimestamp

	ref, result, err := s.client.Collection(FirestoreCollection).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("add trip document: %w", err)
	}
	rec.ID = types.ID(ref.ID)
	rec.CreatedAt = result.UpdateTime
	return rec.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, id types.ID) (*Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	snap, err := s.client.Collection(FirestoreCollection).Doc(string(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip document: %w", err)
	}

	rec, err := fromDocument(snap.Data())
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

// toDocument keeps the JSON field names so documents read the same as the
// HTTP payloads.
func toDocument(rec *Record) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode trip: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode trip: %w", err)
	}
	delete(doc, "id")
	return doc, nil
}

func fromDocument(doc map[string]any) (*Record, error) {
	created, _ := doc["createdAt"].(time.Time)
	delete(doc, "createdAt")

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode trip: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode trip: %w", err)
	}
	rec.CreatedAt = created
	return &rec, nil
}
