package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// DateRange is the stay used to resolve a price.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates. Both empty means no range.
func ParseDateRange(checkIn, checkOut string) (*DateRange, error) {
	if checkIn == "" && checkOut == "" {
		return nil, nil
	}
	if checkIn == "" || checkOut == "" {
		return nil, errors.New("check-in and check-out must be given together")
	}
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in %q: %w", checkIn, err)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out %q: %w", checkOut, err)
	}
	if !out.After(in) {
		return nil, fmt.Errorf("check-out %s is not after check-in %s", checkOut, checkIn)
	}
	return &DateRange{CheckIn: in, CheckOut: out}, nil
}

// Nights is the length of the stay.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(DateLayout) + ".." + r.CheckOut.Format(DateLayout)
}

// RoomInput is one entry of the batch: a room URL and an optional stay.
type RoomInput struct {
	URL   string
	Dates *DateRange
}

// Failure records an input that produced no record.
type Failure struct {
	URL      string    `json:"url"`
	Reason   ErrorKind `json:"reason"`
	Attempts int       `json:"attempts"`
	Message  string    `json:"message,omitempty"`
}

// Outcome is the result of processing one input; exactly one of Record and
// Failure is set.
type Outcome struct {
	Index   int
	Record  *ListingRecord
	Failure *Failure
}

// BatchResult partitions the inputs of one run into records and failures.
// It is built by a single collector and not modified after the run returns.
type BatchResult struct {
	Successes []ListingRecord `json:"successes"`
	Failures  []Failure       `json:"failures"`
}

// NewBatchResult returns an empty result with non-nil sequences.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		Successes: []ListingRecord{},
		Failures:  []Failure{},
	}
}

// Add appends an outcome to the matching sequence.
func (b *BatchResult) Add(o Outcome) {
	switch {
	case o.Record != nil:
		b.Successes = append(b.Successes, *o.Record)
	case o.Failure != nil:
		b.Failures = append(b.Failures, *o.Failure)
	}
}

// Total is the number of inputs accounted for.
func (b *BatchResult) Total() int {
	return len(b.Successes) + len(b.Failures)
}
