package postgresrepo

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omysaju/saju-go/internal/domain"
)

// RecordStore is the relational driver for the application collection:
//
//	CREATE TABLE applications (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    id         TEXT NOT NULL UNIQUE,
//	    created_at TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    companions JSONB NOT NULL DEFAULT '[]'
//	);
//
// created_at stays text so timestamps that never parsed keep losing merges
// instead of corrupting on insert. Ordering by seq descending reproduces the
// prepend-on-save layout of the key-value driver.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

func (s *RecordStore) GetAll(ctx context.Context) ([]domain.Record, error) {
	const op = "postgresrepo.RecordStore.GetAll"

	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, status, companions
		 FROM applications ORDER BY seq DESC`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	type healed struct {
		id   string
		blob []byte
	}
	var fixups []healed

	for rows.Next() {
		var rec domain.Record
		var companionsRaw []byte
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Status, &companionsRaw); err != nil {
			return nil, wrapDBErr(op, err)
		}

		// corrupt companions payload reads as empty, never errors
		_ = json.Unmarshal(companionsRaw, &rec.Companions)
		rec.Normalize()

		if after, err := json.Marshal(rec.Companions); err == nil && !bytes.Equal(after, companionsRaw) {
			fixups = append(fixups, healed{id: rec.ID, blob: after})
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	// self-healing migration of pre-rename payer fields
	for _, h := range fixups {
		if _, err := s.pool.Exec(ctx,
			`UPDATE applications SET companions = $2 WHERE id = $1`,
			h.id, h.blob); err != nil {
			return nil, wrapDBErr(op, err)
		}
	}

	return records, nil
}

func (s *RecordStore) ReplaceAll(ctx context.Context, records []domain.Record) error {
	const op = "postgresrepo.RecordStore.ReplaceAll"

	err := runTx(ctx, s.pool, func(ctx context.Context, tx DB) error {
		if _, err := tx.Exec(ctx, `DELETE FROM applications`); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		// reversed so ascending seq reproduces newest-first reads
		for i := len(records) - 1; i >= 0; i-- {
			blob, err := json.Marshal(records[i].Companions)
			if err != nil {
				return err
			}
			batch.Queue(
				`INSERT INTO applications (id, created_at, status, companions)
				 VALUES ($1, $2, $3, $4)`,
				records[i].ID, records[i].CreatedAt, records[i].Status, blob)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range records {
			if _, err := br.Exec(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrapDBErr(op, err)
	}
	return nil
}

func (s *RecordStore) Save(ctx context.Context, record domain.Record) error {
	const op = "postgresrepo.RecordStore.Save"

	blob, err := json.Marshal(record.Companions)
	if err != nil {
		return wrapDBErr(op, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO applications (id, created_at, status, companions)
		 VALUES ($1, $2, $3, $4)`,
		record.ID, record.CreatedAt, record.Status, blob)
	if err != nil {
		return wrapDBErr(op, err)
	}
	return nil
}

func (s *RecordStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const op = "postgresrepo.RecordStore.UpdateStatus"

	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, id string) error {
	const op = "postgresrepo.RecordStore.Delete"

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}
	return nil
}
