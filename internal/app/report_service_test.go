package app_test

import (
	"context"
	"testing"
	"time"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func seedEntries(t *testing.T, db *memory.DB, userID int64, entries map[string]float64) {
	t.Helper()
	for date, weight := range entries {
		if _, err := db.InsertEntry(context.Background(), userID, date, weight); err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestSeries_DailyAllTime(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-10-15": 72.0,
		"2023-10-01": 70.0,
		"2023-10-08": 71.0,
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodAll, domain.GroupDaily, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SeriesPoint{
		{Label: "2023-10-01", Weight: 70.0},
		{Label: "2023-10-08", Weight: 71.0},
		{Label: "2023-10-15", Weight: 72.0},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSeries_WeeklyAllTime(t *testing.T) {
	// One entry per ISO week; each bucket average equals its single entry.
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-10-01": 70.0, // 2023-W39
		"2023-10-08": 71.0, // 2023-W40
		"2023-10-15": 72.0, // 2023-W41
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodAll, domain.GroupWeekly, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SeriesPoint{
		{Label: "2023-W39", Weight: 70.0},
		{Label: "2023-W40", Weight: 71.0},
		{Label: "2023-W41", Weight: 72.0},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(points), points)
	}
	for i, p := range points {
		if p != want[i] {
			t.Errorf("bucket %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSeries_WeeklyExcludesCutoffBucket(t *testing.T) {
	// now and cutoff (now-7d) both fall in distinct ISO weeks; the cutoff's
	// own week is a partial period and must not appear.
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-10-15": 72.0, // 2023-W41, the cutoff's week
		"2023-10-18": 73.0, // 2023-W42
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodWeek, domain.GroupWeekly, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 1 {
		t.Fatalf("expected 1 bucket, got %d: %+v", len(points), points)
	}
	if points[0].Label != "2023-W42" || points[0].Weight != 73.0 {
		t.Errorf("unexpected bucket: %+v", points[0])
	}
}

func TestSeries_MonthlyAveragesRounded(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-09-05": 70.0,
		"2023-09-12": 70.5, // avg 70.25 -> 70.3
		"2023-10-03": 69.0,
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodAll, domain.GroupMonthly, mustTime(t, "2023-11-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SeriesPoint{
		{Label: "2023-09", Weight: 70.3},
		{Label: "2023-10", Weight: 69.0},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(points), points)
	}
	for i, p := range points {
		if p != want[i] {
			t.Errorf("bucket %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSeries_Yearly(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2022-06-01": 80.0,
		"2022-12-01": 78.0,
		"2023-06-01": 76.0,
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodAll, domain.GroupYearly, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SeriesPoint{
		{Label: "2022", Weight: 79.0},
		{Label: "2023", Weight: 76.0},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(points), points)
	}
	for i, p := range points {
		if p != want[i] {
			t.Errorf("bucket %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSeries_DailyWindowFiltersByCutoff(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-10-10": 70.0, // before the 7-day window
		"2023-10-16": 71.0,
		"2023-10-20": 72.0,
	})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodWeek, domain.GroupDaily, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points inside the window, got %d: %+v", len(points), points)
	}
	if points[0].Label != "2023-10-16" || points[1].Label != "2023-10-20" {
		t.Errorf("unexpected points: %+v", points)
	}
}

func TestSeries_CrossUserIsolation(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{"2023-10-01": 70.0})
	seedEntries(t, db, 2, map[string]float64{"2023-10-01": 95.0})
	svc := app.NewReportService(db)

	points, err := svc.SeriesAt(context.Background(), 1, domain.PeriodAll, domain.GroupDaily, mustTime(t, "2023-10-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Weight != 70.0 {
		t.Fatalf("user 1 must only see their own entries, got %+v", points)
	}
}

func TestSeries_AllCombinations(t *testing.T) {
	db := memory.New()
	seedEntries(t, db, 1, map[string]float64{
		"2023-10-20": 72.0,
		"2023-06-15": 74.0,
		"2022-03-10": 80.0,
	})
	svc := app.NewReportService(db)
	now := mustTime(t, "2023-10-22")

	periods := []domain.TimePeriod{
		domain.PeriodAll, domain.PeriodWeek, domain.PeriodMonth,
		domain.PeriodQuarter, domain.PeriodHalfYear, domain.PeriodYear,
	}
	grains := []domain.GroupBy{
		domain.GroupDaily, domain.GroupWeekly, domain.GroupMonthly, domain.GroupYearly,
	}

	for _, p := range periods {
		for _, g := range grains {
			if _, err := svc.SeriesAt(context.Background(), 1, p, g, now); err != nil {
				t.Errorf("period %q grain %q: unexpected error: %v", p, g, err)
			}
		}
	}
}
