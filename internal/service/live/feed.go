package live

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/omysaju/saju-go/internal/domain"
)

const (
	feedSize = 20
	// feedWindowMinutes is how far back the feed looks. Older orders age
	// out of the list.
	feedWindowMinutes = 600
)

// Visual statuses cycled through by the feed. Only "completed" and
// "processing" ever come from real order data, the rest are positional
// dressing applied further down the list.
const (
	FeedCompleted  = "completed"
	FeedProcessing = "processing"
	FeedAnalyzing  = "analyzing"
	FeedPreparing  = "preparing"
	FeedSending    = "sending"
)

type FeedEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	Time       string `json:"time"`
	Color      string `json:"color"`
	MinutesAgo int    `json:"minutesAgo"`
	Real       bool   `json:"isReal"`
}

var feedSurnames = []string{
	"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
	"한", "오", "서", "신", "권", "황", "안", "송", "전", "홍",
}

var feedGivenNames = []string{
	"*훈", "*희", "*영", "*준", "*현", "*민", "*서", "*진", "*우",
	"*아", "*은", "*재", "*윤", "*호", "*빈", "*성", "*연", "*주",
}

var feedColors = []string{
	"bg-slate-500", "bg-emerald-500", "bg-blue-600", "bg-slate-400",
	"bg-sky-500", "bg-indigo-400", "bg-blue-500", "bg-rose-500",
	"bg-amber-500",
}

// Feed returns the recent-activity list: real orders from the last ten hours,
// masked, padded with fabricated entries when there are too few to fill the
// list.
func (s *Service) Feed(ctx context.Context) ([]FeedEntry, error) {
	const op = "service.live.Feed"

	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return buildFeed(records, s.now()), nil
}

func buildFeed(records []domain.Record, now time.Time) []FeedEntry {
	feed := make([]FeedEntry, 0, feedSize)

	for _, rec := range records {
		if len(rec.Companions) == 0 {
			continue
		}
		main := rec.Companions[0]

		created, ok := rec.CreatedTime()
		if !ok {
			continue
		}

		mins := int(now.Sub(created) / time.Minute)
		if mins < 0 || mins >= feedWindowMinutes {
			continue
		}

		status := FeedProcessing
		if rec.Status == domain.StatusCompleted {
			status = FeedCompleted
		}

		feed = append(feed, FeedEntry{
			ID:         rec.ID,
			Name:       MaskName(main.Name),
			Phone:      MaskPhone(main.Phone3),
			Status:     status,
			Time:       relativeTime(mins),
			Color:      feedColors[rand.Intn(len(feedColors))],
			MinutesAgo: mins,
			Real:       true,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].MinutesAgo < feed[j].MinutesAgo
	})

	lastMins := 0
	if len(feed) > 0 {
		lastMins = feed[len(feed)-1].MinutesAgo
	}

	for len(feed) < feedSize {
		lastMins += 15 + rand.Intn(30)
		if lastMins >= feedWindowMinutes {
			break
		}
		feed = append(feed, simulatedEntry(lastMins))
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].MinutesAgo < feed[j].MinutesAgo
	})

	if len(feed) > feedSize {
		feed = feed[:feedSize]
	}

	return applyVisualStatuses(feed)
}

func simulatedEntry(minutesAgo int) FeedEntry {
	return FeedEntry{
		ID: fmt.Sprintf("sim-%d-%04x", time.Now().UnixMilli(), rand.Intn(0x10000)),
		Name: feedSurnames[rand.Intn(len(feedSurnames))] +
			feedGivenNames[rand.Intn(len(feedGivenNames))],
		Phone:      fmt.Sprintf("010-****-%d", 1000+rand.Intn(9000)),
		Status:     FeedCompleted,
		Time:       relativeTime(minutesAgo),
		Color:      feedColors[rand.Intn(len(feedColors))],
		MinutesAgo: minutesAgo,
		Real:       false,
	}
}

// applyVisualStatuses paints progress states down the list, so the feed reads
// as a pipeline in motion. Real orders that are not completed keep the status
// derived from their record.
func applyVisualStatuses(feed []FeedEntry) []FeedEntry {
	for i := range feed {
		if feed[i].Real && feed[i].Status != FeedCompleted {
			continue
		}

		switch {
		case i > 2 && i < 6:
			feed[i].Status = FeedProcessing
		case i >= 6 && i < 9:
			feed[i].Status = FeedAnalyzing
		case i >= 9 && i < 12:
			feed[i].Status = FeedPreparing
		case i >= 12:
			feed[i].Status = FeedSending
		default:
			feed[i].Status = FeedCompleted
		}
	}

	return feed
}

// MaskName keeps the first hangul syllable (and the last for longer names)
// and stars the rest. Safe for any UTF-8 input.
func MaskName(name string) string {
	runes := []rune(strings.TrimSpace(name))

	switch {
	case len(runes) == 0:
		return "익명*"
	case len(runes) > 2:
		return string(runes[0]) + "*" + string(runes[len(runes)-1])
	default:
		return string(runes[0]) + "*"
	}
}

// MaskPhone keeps only the last four digits of whatever was entered.
func MaskPhone(phone string) string {
	var digits []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	last4 := "0000"
	if len(digits) >= 4 {
		last4 = string(digits[len(digits)-4:])
	} else if len(digits) > 0 {
		last4 = string(digits)
	}

	return "010-****-" + last4
}

func relativeTime(mins int) string {
	switch {
	case mins <= 2:
		return "방금 전"
	case mins < 60:
		return fmt.Sprintf("%d분 전", mins)
	default:
		return fmt.Sprintf("%d시간 전", mins/60)
	}
}
