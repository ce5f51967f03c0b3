package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/project-registry/models"
)

// textProjectFields are the required free-text submission fields.
var textProjectFields = []string{
	"name",
	"reason",
	"type",
	"category",
	"priority",
	"helpDeskLocation",
	"projectLocation",
}

// requiredProjectFields must be present and truthy. div is optional.
var requiredProjectFields = append(append([]string{}, textProjectFields...), "startDate", "endDate")

// dateLayouts are tried in order when a date arrives as a string.
// Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// BuildSubmission validates a decoded submission body and returns the record
// to store. Any client-supplied status is ignored; new projects are always
// Registered. Errors wrap ErrInvalidPayload, ErrMissingFields or
// ErrInvalidDateRange.
func BuildSubmission(payload map[string]interface{}) (*models.Project, error) {
	if payload == nil {
		return nil, ErrInvalidPayload
	}

	var missing []string
	for _, field := range requiredProjectFields {
		if isFalsy(payload[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	text := make(map[string]string, len(textProjectFields))
	for _, field := range textProjectFields {
		s, ok := payload[field].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidPayload, field)
		}
		text[field] = s
	}

	div, err := optionalString(payload, "div")
	if err != nil {
		return nil, err
	}

	start, err := parseDate("startDate", payload["startDate"])
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", payload["endDate"])
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	return &models.Project{
		Name:             text["name"],
		Reason:           text["reason"],
		Type:             text["type"],
		Div:              div,
		Category:         text["category"],
		Priority:         text["priority"],
		HelpDeskLocation: text["helpDeskLocation"],
		ProjectLocation:  text["projectLocation"],
		Status:           models.StatusRegistered,
		StartDate:        start,
		EndDate:          end,
	}, nil
}

// isFalsy treats absent, null, "", 0 and false as missing.
func isFalsy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0 || math.IsNaN(val)
	case int:
		return val == 0
	case int64:
		return val == 0
	}
	return false
}

func optionalString(payload map[string]interface{}, field string) (*string, error) {
	v := payload[field]
	if isFalsy(v) {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidPayload, field)
	}
	return &s, nil
}

// maxEpochMillis is the largest magnitude a JavaScript Date accepts.
const maxEpochMillis = 8.64e15

// parseDate accepts a date string in one of dateLayouts or a number of
// milliseconds since the Unix epoch. Years outside 0..9999 are rejected since
// they cannot be rendered as RFC 3339.
func parseDate(field string, v interface{}) (time.Time, error) {
	t, ok := toTime(v)
	if !ok || t.Year() < 0 || t.Year() > 9999 {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date", ErrInvalidPayload, field)
	}
	return t, nil
}

func toTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	case float64:
		if math.IsNaN(val) || math.Abs(val) > maxEpochMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(val)).UTC(), true
	case int64:
		return epochMillis(val)
	case int:
		return epochMillis(int64(val))
	}
	return time.Time{}, false
}

func epochMillis(ms int64) (time.Time, bool) {
	if ms > maxEpochMillis || ms < -maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
