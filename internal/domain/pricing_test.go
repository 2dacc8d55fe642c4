package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanionsTotal(t *testing.T) {
	tests := []struct {
		name     string
		products []string
		want     int
	}{
		{"empty", nil, 0},
		{"single premium", []string{ProductPremium}, 29800},
		{"single year", []string{ProductYear}, 19800},
		{"couple pair is one bundle", []string{ProductCouple, ProductCouple}, 55000},
		{"odd couple rounds up", []string{ProductCouple}, 55000},
		{"three couples is two bundles", []string{ProductCouple, ProductCouple, ProductCouple}, 110000},
		{"mixed", []string{ProductCouple, ProductCouple, ProductPremium, ProductYear}, 55000 + 29800 + 19800},
		{"unknown product is free", []string{"gold"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := make([]Companion, len(tt.products))
			for i, p := range tt.products {
				cs[i] = Companion{Product: p}
			}
			assert.Equal(t, tt.want, CompanionsTotal(cs))
		})
	}
}

func TestRecordTotal(t *testing.T) {
	rec := Record{Companions: []Companion{
		{Product: ProductPremium},
		{Product: ProductCouple},
		{Product: ProductCouple},
	}}
	assert.Equal(t, 29800+55000, rec.Total())
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord([]Companion{{Name: "김민수", DepositorName: "김부모", DepositorDifferent: true}})

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, StatusPending, rec.Status)

	_, ok := rec.CreatedTime()
	assert.True(t, ok)

	// companions come back normalized
	assert.Equal(t, "김부모", rec.Companions[0].PayerName)
	assert.True(t, rec.Companions[0].PayerDifferent)
}
