package careers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ---------- requests

type CreateCareerRequest struct {
	Position        string   `json:"position" binding:"required"`
	Department      string   `json:"department" binding:"required"`
	JobType         string   `json:"job_type" binding:"required,oneof=Full-time Part-time Contract Internship"`
	Location        string   `json:"location" binding:"required"`
	ExperienceLevel string   `json:"experience_level" binding:"required"`
	SalaryRange     *string  `json:"salary_range"`
	Description     string   `json:"description" binding:"required"`
	Requirements    []string `json:"requirements"`
	EndingDate      Date     `json:"ending_date"`
	IsActive        *bool    `json:"is_active"` // defaults to true
}

// UpdateCareerRequest only touches the fields that were sent.
type UpdateCareerRequest struct {
	Position        *string   `json:"position"`
	Department      *string   `json:"department"`
	JobType         *string   `json:"job_type" binding:"omitempty,oneof=Full-time Part-time Contract Internship"`
	Location        *string   `json:"location"`
	ExperienceLevel *string   `json:"experience_level"`
	SalaryRange     *string   `json:"salary_range"`
	Description     *string   `json:"description"`
	Requirements    *[]string `json:"requirements"`
	EndingDate      Date      `json:"ending_date"`
	IsActive        *bool     `json:"is_active"`
}

// Date accepts "2006-01-02" or a full RFC 3339 timestamp. Null and "" clear it.
type Date struct {
	Time *time.Time
	Set  bool // the field was present in the body, even as null
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	if bytes.Equal(raw, []byte("null")) {
		*d = Date{Set: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("ending_date must be a date string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{Set: true}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			*d = Date{Time: &t, Set: true}
			return nil
		}
	}
	return fmt.Errorf("ending_date %q is not a valid date", s)
}

// Value is the date to store, nil when cleared or absent.
func (d Date) Value() *time.Time {
	return d.Time
}
