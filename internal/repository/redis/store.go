package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/omysaju/saju-go/internal/domain"
	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/repository"
)

// RecordStore keeps the whole application collection as one JSON array under
// a fixed key, the same layout the legacy browser storage used. Reads are
// self-healing: companions are normalized and the healed form written back,
// and unparsable payloads read as an empty collection.
type RecordStore struct {
	rdb *redis.Client
	key string
}

func NewRecordStore(rdb *redis.Client) *RecordStore {
	return &RecordStore{rdb: rdb, key: redisx.KeyApplications()}
}

func (s *RecordStore) GetAll(ctx context.Context) ([]domain.Record, error) {
	const op = "redis.RecordStore.GetAll"

	raw, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, wrapErr(op, err)
	}

	var records []domain.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// corrupt payload counts as no data
		return []domain.Record{}, nil
	}

	cleaned := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		rec.Normalize()
		cleaned = append(cleaned, rec)
	}

	// persist the healed form so old spellings migrate for good
	if err := s.write(ctx, cleaned); err != nil {
		return nil, wrapErr(op, err)
	}

	return cleaned, nil
}

func (s *RecordStore) ReplaceAll(ctx context.Context, records []domain.Record) error {
	const op = "redis.RecordStore.ReplaceAll"

	if err := s.write(ctx, records); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func (s *RecordStore) Save(ctx context.Context, record domain.Record) error {
	const op = "redis.RecordStore.Save"

	existing, err := s.GetAll(ctx)
	if err != nil {
		return wrapErr(op, err)
	}

	updated := append([]domain.Record{record}, existing...)
	if err := s.write(ctx, updated); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func (s *RecordStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const op = "redis.RecordStore.UpdateStatus"

	records, err := s.GetAll(ctx)
	if err != nil {
		return wrapErr(op, err)
	}

	found := false
	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			found = true
		}
	}
	if !found {
		return wrapErr(op, repository.ErrNotFound)
	}

	if err := s.write(ctx, records); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, id string) error {
	const op = "redis.RecordStore.Delete"

	records, err := s.GetAll(ctx)
	if err != nil {
		return wrapErr(op, err)
	}

	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return wrapErr(op, repository.ErrNotFound)
	}

	if err := s.write(ctx, kept); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func (s *RecordStore) write(ctx context.Context, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, string(b), 0).Err()
}
