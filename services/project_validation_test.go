package services

import (
	"math"
	"testing"
	"time"

	"github.com/project-registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Road Repair",
		"reason":           "Infra",
		"type":             "Civil",
		"category":         "Maintenance",
		"priority":         "High",
		"helpDeskLocation": "Zone1",
		"projectLocation":  "Main St",
		"startDate":        "2024-01-01",
		"endDate":          "2024-06-01",
	}
}

func TestBuildSubmission(t *testing.T) {
	t.Run("builds a registered project", func(t *testing.T) {
		payload := validPayload()
		payload["status"] = "Closed"
		payload["div"] = "Engineering"

		p, err := BuildSubmission(payload)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRegistered, p.Status)
		assert.Equal(t, "Road Repair", p.Name)
		assert.Equal(t, "Main St", p.ProjectLocation)
		require.NotNil(t, p.Div)
		assert.Equal(t, "Engineering", *p.Div)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.EndDate)
	})

	t.Run("div is optional", func(t *testing.T) {
		p, err := BuildSubmission(validPayload())
		require.NoError(t, err)
		assert.Nil(t, p.Div)
	})

	t.Run("nil payload is invalid", func(t *testing.T) {
		_, err := BuildSubmission(nil)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("equal dates are accepted", func(t *testing.T) {
		payload := validPayload()
		payload["endDate"] = "2024-01-01"
		_, err := BuildSubmission(payload)
		assert.NoError(t, err)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		payload := validPayload()
		payload["endDate"] = "2023-01-01"
		_, err := BuildSubmission(payload)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("accepts RFC 3339 and epoch milliseconds", func(t *testing.T) {
		payload := validPayload()
		payload["startDate"] = "2024-01-01T08:30:00.000Z"
		payload["endDate"] = float64(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

		p, err := BuildSubmission(payload)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), p.StartDate)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.EndDate)
	})

	t.Run("unparseable date is invalid", func(t *testing.T) {
		payload := validPayload()
		payload["startDate"] = "next tuesday"
		_, err := BuildSubmission(payload)
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.Contains(t, err.Error(), "startDate")
	})

	t.Run("dates outside the renderable range are invalid", func(t *testing.T) {
		year10000 := float64(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
		for _, end := range []interface{}{year10000, float64(1e20), math.Inf(1), int64(9e15)} {
			payload := validPayload()
			payload["startDate"] = float64(1)
			payload["endDate"] = end
			_, err := BuildSubmission(payload)
			assert.ErrorIs(t, err, ErrInvalidPayload, "endDate %v", end)
			assert.NotErrorIs(t, err, ErrInvalidDateRange)
		}

		payload := validPayload()
		payload["startDate"] = "0000-01-01T00:00:00+01:00"
		_, err := BuildSubmission(payload)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("year 9999 is accepted", func(t *testing.T) {
		payload := validPayload()
		payload["endDate"] = float64(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC).UnixMilli())
		p, err := BuildSubmission(payload)
		require.NoError(t, err)
		assert.Equal(t, 9999, p.EndDate.Year())
	})

	t.Run("non-string text field is invalid", func(t *testing.T) {
		payload := validPayload()
		payload["priority"] = float64(3)
		_, err := BuildSubmission(payload)
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.Contains(t, err.Error(), "priority")
	})
}

func TestBuildSubmission_MissingFields(t *testing.T) {
	falsy := map[string]interface{}{
		"empty string": "",
		"null":         nil,
		"zero":         float64(0),
		"false":        false,
	}

	for _, field := range requiredProjectFields {
		for label, value := range falsy {
			t.Run(field+" "+label, func(t *testing.T) {
				payload := validPayload()
				payload[field] = value
				_, err := BuildSubmission(payload)
				require.ErrorIs(t, err, ErrMissingFields)
				assert.Contains(t, err.Error(), field)
			})
		}

		t.Run(field+" absent", func(t *testing.T) {
			payload := validPayload()
			delete(payload, field)
			_, err := BuildSubmission(payload)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}
