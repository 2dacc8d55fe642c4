package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// statusPriority ranks statuses for merge conflict resolution.
// Unknown statuses rank below every known one.
var statusPriority = map[Status]int{
	StatusCompleted: 5,
	StatusPaid:      4,
	StatusPending:   3,
	StatusDraft:     2,
	StatusCancelled: 1,
}

// StatusPriority returns the conflict-resolution rank of s (0 for unknown).
func StatusPriority(s Status) int {
	return statusPriority[s]
}

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s Status) bool {
	_, ok := statusPriority[s]
	return ok
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Opposite returns the other gender, defaulting to male for any
// unrecognized value.
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// Record is one customer submission: 1-4 companions, the first of which is
// always the primary applicant. CreatedAt is stored as the original ISO
// string so that unparsable remote timestamps survive a round trip.
type Record struct {
	ID         string      `json:"id"`
	CreatedAt  string      `json:"createdAt"`
	Status     Status      `json:"status"`
	Companions []Companion `json:"companions"`
}

// NewRecord builds a pending record for the given companions, assigning a
// fresh id and the current timestamp. Companions are normalized so both
// payer-field spellings are populated.
func NewRecord(companions []Companion) Record {
	normalized := make([]Companion, len(companions))
	for i, c := range companions {
		c.Normalize()
		normalized[i] = c
	}

	return Record{
		ID:         fmt.Sprintf("APP-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Status:     StatusPending,
		Companions: normalized,
	}
}

// CreatedTime parses CreatedAt; ok is false when the timestamp is unparsable.
func (r Record) CreatedTime() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize heals every companion in place (see Companion.Normalize).
func (r *Record) Normalize() {
	for i := range r.Companions {
		r.Companions[i].Normalize()
	}
}
