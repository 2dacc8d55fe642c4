package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omysaju/saju-go/internal/domain"
)

func feedRecord(id string, minsAgo int, status domain.Status, now time.Time) domain.Record {
	return domain.Record{
		ID:        id,
		CreatedAt: now.Add(-time.Duration(minsAgo) * time.Minute).UTC().Format(time.RFC3339),
		Status:    status,
		Companions: []domain.Companion{
			{Name: "김민수", Phone3: "5678", Product: domain.ProductPremium},
		},
	}
}

func TestMaskName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"김민수", "김*수"},
		{"이수", "이*"},
		{"박", "박*"},
		{"  ", "익명*"},
		{"", "익명*"},
		{"김수민아", "김*아"},
		{"John Smith", "J*h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskName(tt.in), "input %q", tt.in)
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "010-****-5678", MaskPhone("5678"))
	assert.Equal(t, "010-****-5678", MaskPhone("010-1234-5678"))
	assert.Equal(t, "010-****-78", MaskPhone("78"))
	assert.Equal(t, "010-****-0000", MaskPhone(""))
	assert.Equal(t, "010-****-0000", MaskPhone("no digits"))
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "방금 전", relativeTime(0))
	assert.Equal(t, "방금 전", relativeTime(2))
	assert.Equal(t, "3분 전", relativeTime(3))
	assert.Equal(t, "59분 전", relativeTime(59))
	assert.Equal(t, "1시간 전", relativeTime(60))
	assert.Equal(t, "9시간 전", relativeTime(599))
}

func TestBuildFeed_RealRecordsMaskedAndPadded(t *testing.T) {
	now := time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC)

	records := []domain.Record{
		feedRecord("APP-1", 5, domain.StatusCompleted, now),
		feedRecord("APP-2", 30, domain.StatusPending, now),
	}

	feed := buildFeed(records, now)

	require.NotEmpty(t, feed)
	assert.LessOrEqual(t, len(feed), feedSize)

	assert.Equal(t, "APP-1", feed[0].ID)
	assert.True(t, feed[0].Real)
	assert.Equal(t, "김*수", feed[0].Name)
	assert.Equal(t, "010-****-5678", feed[0].Phone)

	realCount := 0
	for i, e := range feed {
		if e.Real {
			realCount++
		}
		assert.Less(t, e.MinutesAgo, feedWindowMinutes)
		if i > 0 {
			assert.GreaterOrEqual(t, e.MinutesAgo, feed[i-1].MinutesAgo, "oldest last")
		}
	}
	assert.Equal(t, 2, realCount)
	assert.Greater(t, len(feed), 2, "padded with simulated entries")
}

func TestBuildFeed_ExcludesStaleAndFutureRecords(t *testing.T) {
	now := time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC)

	records := []domain.Record{
		feedRecord("old", 700, domain.StatusCompleted, now),
		feedRecord("future", -5, domain.StatusCompleted, now),
		{ID: "no-companions", CreatedAt: now.Format(time.RFC3339), Status: domain.StatusPending},
		{ID: "bad-date", CreatedAt: "garbage", Status: domain.StatusPending,
			Companions: []domain.Companion{{Name: "김"}}},
	}

	for _, e := range buildFeed(records, now) {
		assert.False(t, e.Real, "every excluded record leaves only simulated entries")
	}
}

func TestApplyVisualStatuses_Positional(t *testing.T) {
	feed := make([]FeedEntry, 15)
	for i := range feed {
		feed[i] = FeedEntry{Status: FeedCompleted}
	}

	out := applyVisualStatuses(feed)

	assert.Equal(t, FeedCompleted, out[0].Status)
	assert.Equal(t, FeedCompleted, out[2].Status)
	assert.Equal(t, FeedProcessing, out[3].Status)
	assert.Equal(t, FeedProcessing, out[5].Status)
	assert.Equal(t, FeedAnalyzing, out[6].Status)
	assert.Equal(t, FeedAnalyzing, out[8].Status)
	assert.Equal(t, FeedPreparing, out[9].Status)
	assert.Equal(t, FeedPreparing, out[11].Status)
	assert.Equal(t, FeedSending, out[12].Status)
	assert.Equal(t, FeedSending, out[14].Status)
}

func TestApplyVisualStatuses_RealInProgressKept(t *testing.T) {
	feed := []FeedEntry{
		{Real: true, Status: FeedProcessing},
		{Real: false, Status: FeedCompleted},
	}

	out := applyVisualStatuses(feed)

	assert.Equal(t, FeedProcessing, out[0].Status)
	assert.Equal(t, FeedCompleted, out[1].Status)
}
