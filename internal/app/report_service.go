package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"weighttrack/internal/domain"
)

// ReportService builds the aggregated weight series behind the graph view.
type ReportService struct {
	repo domain.EntryRepository
}

// NewReportService creates a ReportService backed by the given repository.
func NewReportService(repo domain.EntryRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Series returns the report for the given window and grain, relative to the
// current time.
func (s *ReportService) Series(ctx context.Context, userID int64, period domain.TimePeriod, grain domain.GroupBy) ([]domain.SeriesPoint, error) {
	return s.SeriesAt(ctx, userID, period, grain, time.Now())
}

// SeriesAt is Series with an explicit reference time.
//
// The daily grain returns every entry with date >= cutoff, ascending. The
// aggregated grains partition entries into calendar buckets (ISO week, month
// or year) and return the per-bucket average rounded to one decimal,
// restricted to buckets strictly after the bucket containing the cutoff: the
// partial period the cutoff falls into is excluded rather than averaged over
// missing days.
func (s *ReportService) SeriesAt(ctx context.Context, userID int64, period domain.TimePeriod, grain domain.GroupBy, now time.Time) ([]domain.SeriesPoint, error) {
	cutoff := period.Cutoff(now)
	entries, err := s.repo.ListEntriesSince(ctx, userID, cutoff.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	if grain == domain.GroupDaily {
		points := make([]domain.SeriesPoint, 0, len(entries))
		for _, e := range entries {
			points = append(points, domain.SeriesPoint{Label: e.Date, Weight: e.Weight})
		}
		return points, nil
	}

	boundary, err := bucketKey(cutoff.Format("2006-01-02"), grain)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[bucket]*acc)
	var order []bucket
	for _, e := range entries {
		key, err := bucketKey(e.Date, grain)
		if err != nil {
			return nil, err
		}
		if !key.after(boundary) {
			continue
		}
		a, ok := sums[key]
		if !ok {
			a = &acc{}
			sums[key] = a
			order = append(order, key)
		}
		a.sum += e.Weight
		a.count++
	}

	// Entries arrive date-ascending, so first appearance order is bucket
	// order.
	points := make([]domain.SeriesPoint, 0, len(order))
	for _, key := range order {
		a := sums[key]
		avg := math.Round(a.sum/float64(a.count)*10) / 10
		points = append(points, domain.SeriesPoint{Label: key.label, Weight: avg})
	}
	return points, nil
}

// bucket identifies one aggregation period. year/sub order the bucket; sub is
// the ISO week for weekly, the month for monthly and zero for yearly.
type bucket struct {
	year  int
	sub   int
	label string
}

func (b bucket) after(other bucket) bool {
	if b.year != other.year {
		return b.year > other.year
	}
	return b.sub > other.sub
}

func bucketKey(date string, grain domain.GroupBy) (bucket, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return bucket{}, err
	}
	switch grain {
	case domain.GroupWeekly:
		y, w := t.ISOWeek()
		return bucket{year: y, sub: w, label: fmt.Sprintf("%d-W%02d", y, w)}, nil
	case domain.GroupMonthly:
		return bucket{year: t.Year(), sub: int(t.Month()), label: fmt.Sprintf("%d-%02d", t.Year(), t.Month())}, nil
	case domain.GroupYearly:
		return bucket{year: t.Year(), label: fmt.Sprintf("%d", t.Year())}, nil
	default:
		return bucket{}, domain.ErrBadGrouping
	}
}
