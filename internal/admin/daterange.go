// Mohamedbadhey | 2026
// daterange.go

package admin

import (
	"fmt"
	"time"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

// DateRange is either unbounded (all time) or a closed interval with
// inclusive endpoints. The zero value is all time.
type DateRange struct {
	start   time.Time
	end     time.Time
	bounded bool
}

func AllTime() DateRange {
	return DateRange{}
}

func Between(start, end time.Time) DateRange {
	return DateRange{start: start, end: end, bounded: true}
}

func (r DateRange) Bounds() (start, end time.Time, ok bool) {
	return r.start, r.end, r.bounded
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.bounded {
		return true
	}
	return !t.Before(r.start) && !t.After(r.end)
}

// Predicate renders the range as a SQL condition on column using numbered
// placeholders starting at argIdx. Unbounded ranges render as TRUE so the
// clause is always present.
func (r DateRange) Predicate(
	column string,
	argIdx int,
) (clause string, args []any, next int) {
	if !r.bounded {
		return "TRUE", nil, argIdx
	}
	clause = fmt.Sprintf(
		"%s >= $%d AND %s <= $%d", column, argIdx, column, argIdx+1)
	return clause, []any{r.start, r.end}, argIdx + 2
}

func (r DateRange) String() string {
	if !r.bounded {
		return "all-time"
	}
	return fmt.Sprintf(
		"%s..%s",
		r.start.Format("2006-01-02"),
		r.end.Format("2006-01-02"),
	)
}

// ParseDateRange builds a range from optional query-string dates. Both
// present gives a closed interval covering the whole end day; both absent
// gives all time; one without the other is invalid.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	if startStr == "" && endStr == "" {
		return AllTime(), nil
	}

	if startStr == "" || endStr == "" {
		return DateRange{}, fmt.Errorf(
			"start_date and end_date must be given together: %w",
			core.ErrInvalidInput)
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return DateRange{}, fmt.Errorf(
			"invalid start_date: %w", core.ErrInvalidInput)
	}

	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return DateRange{}, fmt.Errorf(
			"invalid end_date: %w", core.ErrInvalidInput)
	}

	if end.Before(start) {
		return DateRange{}, fmt.Errorf(
			"end_date precedes start_date: %w", core.ErrInvalidInput)
	}

	// Inclusive through the last instant of the end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	return Between(start, end), nil
}
