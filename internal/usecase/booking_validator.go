package usecase

import (
	"strings"
	"time"

	"venue-booking/internal/dto/request"
	"venue-booking/pkg/utils"
)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04"
)

// ValidationResult is the outcome of ValidateBookingRequest. StartAt and
// EndAt are only meaningful when Valid reports true.
type ValidationResult struct {
	Fields  []utils.FieldError
	StartAt time.Time
	EndAt   time.Time
}

func (r ValidationResult) Valid() bool {
	return len(r.Fields) == 0
}

// Err returns a *ValidationError, or nil when the request is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Fields: r.Fields}
}

// ValidateBookingRequest checks presence of every contact and schedule
// field, then that the end instant is strictly after the start instant.
// Dates and times are combined in loc. req is not modified.
func ValidateBookingRequest(req *request.CreateBookingRequest, loc *time.Location) ValidationResult {
	trimmed := *req
	trimmed.Name = strings.TrimSpace(req.Name)
	trimmed.Email = strings.TrimSpace(req.Email)
	trimmed.Phone = strings.TrimSpace(req.Phone)
	trimmed.Service = strings.TrimSpace(req.Service)
	trimmed.StartDate = strings.TrimSpace(req.StartDate)
	trimmed.EndDate = strings.TrimSpace(req.EndDate)
	trimmed.StartTime = strings.TrimSpace(req.StartTime)
	trimmed.EndTime = strings.TrimSpace(req.EndTime)

	var result ValidationResult
	result.Fields = utils.ValidateFields(&trimmed)

	// the temporal rule needs all four schedule fields
	for _, f := range result.Fields {
		switch f.Field {
		case "start_date", "end_date", "start_time", "end_time":
			return result
		}
	}

	if loc == nil {
		loc = time.UTC
	}

	startAt, ok := combine(&result, trimmed.StartDate, trimmed.StartTime, "start_date", "start_time", loc)
	endAt, ok2 := combine(&result, trimmed.EndDate, trimmed.EndTime, "end_date", "end_time", loc)
	if !ok || !ok2 {
		return result
	}

	if !endAt.After(startAt) {
		result.Fields = append(result.Fields, utils.FieldError{
			Field:   "end_time",
			Message: "End must be after start",
		})
		return result
	}

	result.StartAt = startAt
	result.EndAt = endAt
	return result
}

func combine(result *ValidationResult, date, clock, dateField, clockField string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(bookingDateLayout, date, loc)
	if err != nil {
		result.Fields = append(result.Fields, utils.FieldError{
			Field:   dateField,
			Message: "Must be a date in YYYY-MM-DD format",
		})
	}

	c, cerr := time.Parse(bookingTimeLayout, clock)
	if cerr != nil {
		result.Fields = append(result.Fields, utils.FieldError{
			Field:   clockField,
			Message: "Must be a time in HH:MM format",
		})
	}

	if err != nil || cerr != nil {
		return time.Time{}, false
	}

	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), true
}
