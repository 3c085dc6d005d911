package domain

import (
	"errors"
	"time"
)

var (
	// ErrBadPeriod indicates an unrecognised time_period parameter.
	ErrBadPeriod = errors.New("unknown time period")
	// ErrBadGrouping indicates an unrecognised group_by parameter.
	ErrBadGrouping = errors.New("unknown grouping")
)

// TimePeriod selects the lower time bound of a report. Windows are fixed
// durations, not calendar periods: a "month" is exactly 30 days.
type TimePeriod string

// Supported time periods.
const (
	PeriodAll      TimePeriod = "a"
	PeriodWeek     TimePeriod = "w"
	PeriodMonth    TimePeriod = "m"
	PeriodQuarter  TimePeriod = "q"
	PeriodHalfYear TimePeriod = "h"
	PeriodYear     TimePeriod = "y"
)

// ParseTimePeriod maps a request parameter to a TimePeriod. The empty string
// defaults to PeriodAll; anything unrecognised is ErrBadPeriod.
func ParseTimePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(s) {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodHalfYear, PeriodYear:
		return TimePeriod(s), nil
	default:
		return "", ErrBadPeriod
	}
}

// Cutoff returns the earliest timestamp included in the window, relative to
// now. PeriodAll is the Unix epoch, effectively all history.
func (p TimePeriod) Cutoff(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, 0, -30)
	case PeriodQuarter:
		return now.AddDate(0, 0, -90)
	case PeriodHalfYear:
		return now.AddDate(0, 0, -180)
	case PeriodYear:
		return now.AddDate(0, 0, -365)
	default: // PeriodAll
		return time.Unix(0, 0).UTC()
	}
}

// GroupBy selects the aggregation grain of a report.
type GroupBy string

// Supported grains.
const (
	GroupDaily   GroupBy = "d"
	GroupWeekly  GroupBy = "w"
	GroupMonthly GroupBy = "m"
	GroupYearly  GroupBy = "y"
)

// ParseGroupBy maps a request parameter to a GroupBy. The empty string
// defaults to GroupDaily; anything unrecognised is ErrBadGrouping.
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "":
		return GroupDaily, nil
	case GroupDaily, GroupWeekly, GroupMonthly, GroupYearly:
		return GroupBy(s), nil
	default:
		return "", ErrBadGrouping
	}
}

// SeriesPoint is one row of a report. For the daily grain Label is the entry
// date and Weight the stored value; for aggregated grains Label identifies
// the bucket and Weight is the bucket average.
type SeriesPoint struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}
