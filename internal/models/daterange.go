package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for every calendar date the gateway handles.
const DateLayout = "2006-01-02"

// DateRange is an inclusive reporting window.
type DateRange struct {
	Start string `json:"start_date" validate:"required,datetime=2006-01-02"`
	End   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// DateRangeSource records which precedence level produced a resolved range.
type DateRangeSource string

const (
	DateRangeFromQuery   DateRangeSource = "query"
	DateRangeFromSession DateRangeSource = "session"
	DateRangeFromDefault DateRangeSource = "default"
)

// ResolvedDateRange is a range plus where it came from.
type ResolvedDateRange struct {
	DateRange
	Source DateRangeSource `json:"source"`
}

// Validate checks both bounds parse and start does not come after end.
func (r DateRange) Validate() error {
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return fmt.Errorf("invalid start_date %q", r.Start)
	}
	end, err := time.Parse(DateLayout, r.End)
	if err != nil {
		return fmt.Errorf("invalid end_date %q", r.End)
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", r.Start, r.End)
	}
	return nil
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}
