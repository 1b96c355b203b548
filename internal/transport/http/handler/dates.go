package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errBadDate   = errors.New("dates must be ISO-8601 date or date-time strings")
	errBadBounds = errors.New("endDate must be on or after startDate")
)

// dateRangeQuery is the shared ?startDate&endDate pair. Bounds are
// optional and each one defaults independently downstream.
type dateRangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func (q dateRangeQuery) bounds() (*time.Time, *time.Time, error) {
	start, err := parseISODate(q.StartDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseISODate(q.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, errBadBounds
	}
	return start, end, nil
}

func parseISODate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, errBadDate
}

// pathID returns the :id route parameter when it is a well-formed UUID.
// Malformed ids are treated the same as absent resources, so the caller
// should answer 404.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
