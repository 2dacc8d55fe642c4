// Package reconcile merges the locally persisted application records with a
// snapshot fetched from the remote sheet. The remote rows are loosely typed:
// every logical field may hide under one of several legacy key spellings,
// including pre-migration Korean column names, and the companions payload may
// arrive either parsed or as a JSON-encoded string. Conversion never fails a
// whole sync — malformed rows are skipped, malformed payloads degrade to
// empty values.
package reconcile

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omysaju/saju-go/internal/domain"
)

// Merge reconciles local records with raw remote rows, keyed by record id.
// Records found on only one side are kept; records found on both are merged
// field by field (see mergeRecords). The result keeps only records with at
// least one companion, sorted by creation time descending. Inputs are never
// mutated.
func Merge(local []domain.Record, rows []map[string]any) []domain.Record {
	merged := make(map[string]domain.Record, len(local)+len(rows))
	order := make([]string, 0, len(local)+len(rows))

	for _, rec := range local {
		if rec.ID == "" {
			continue
		}
		if _, ok := merged[rec.ID]; !ok {
			order = append(order, rec.ID)
		}
		merged[rec.ID] = rec
	}

	for _, row := range rows {
		rec, ok := RowToRecord(row)
		if !ok {
			continue
		}
		if existing, found := merged[rec.ID]; found {
			merged[rec.ID] = mergeRecords(existing, rec)
		} else {
			merged[rec.ID] = rec
			order = append(order, rec.ID)
		}
	}

	out := make([]domain.Record, 0, len(order))
	for _, id := range order {
		rec := merged[id]
		if len(rec.Companions) == 0 {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := out[i].CreatedTime()
		tj, jok := out[j].CreatedTime()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})

	return out
}

// RowToRecord converts one remote row into a record, tolerating every
// observed key spelling. Rows without an identifier are rejected.
func RowToRecord(row map[string]any) (domain.Record, bool) {
	id := firstString(row, "id", "ID")
	if id == "" {
		return domain.Record{}, false
	}

	createdAt := firstString(row, "createdAt", "접수일시")
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	status := domain.Status(firstString(row, "status", "상태"))
	if status == "" {
		status = domain.StatusPending
	}

	rec := domain.Record{
		ID:         id,
		CreatedAt:  createdAt,
		Status:     status,
		Companions: extractCompanions(row),
	}
	rec.Normalize()

	return rec, true
}

// mergeRecords resolves one id present on both sides:
//   - companions: the non-empty list wins; both non-empty prefers remote
//   - createdAt: the later-parsing timestamp wins; unparsable loses
//   - status: higher priority wins, remote on ties
func mergeRecords(local, remote domain.Record) domain.Record {
	out := remote

	if len(remote.Companions) == 0 {
		out.Companions = local.Companions
	}

	lt, lok := local.CreatedTime()
	rt, rok := remote.CreatedTime()
	switch {
	case rok && lok:
		if lt.After(rt) {
			out.CreatedAt = local.CreatedAt
		}
	case lok:
		out.CreatedAt = local.CreatedAt
	}

	if domain.StatusPriority(local.Status) > domain.StatusPriority(remote.Status) {
		out.Status = local.Status
	}

	return out
}

// extractCompanions pulls the person-detail list from whichever key carries
// it. A JSON string payload is parsed; anything invalid yields an empty list.
func extractCompanions(row map[string]any) []domain.Companion {
	var raw any
	for _, key := range []string{"companions", "상세데이터 (JSON)", "데이터(JSON)", "데이터", "data"} {
		if v, ok := row[key]; ok && v != nil {
			raw = v
			break
		}
	}
	if raw == nil {
		return nil
	}

	var blob []byte
	switch v := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		blob = []byte(trimmed)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		blob = b
	}

	var companions []domain.Companion
	if err := json.Unmarshal(blob, &companions); err != nil {
		return nil
	}
	return companions
}

func firstString(row map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}
