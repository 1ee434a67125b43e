package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markRequest struct {
	TimetableID int64    `json:"timetable_id" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Statuses    []status `json:"entries" validate:"required,min=1,dive"`
}

type status struct {
	Value string `json:"status" validate:"required,oneof=Present Absent"`
}

func TestValidate_Valid(t *testing.T) {
	req := markRequest{
		TimetableID: 1,
		Date:        "2026-03-02",
		Statuses:    []status{{Value: "Present"}},
	}
	assert.Nil(t, Validate(req))
}

// Errors are keyed by JSON name, not Go field name.
func TestValidate_JSONFieldNames(t *testing.T) {
	errs := Validate(markRequest{Date: "2026-03-02", Statuses: []status{{Value: "Present"}}})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "timetable_id")
	assert.NotContains(t, errs, "TimetableID")
	assert.Equal(t, "is required", errs["timetable_id"])
}

func TestValidate_OneofMessage(t *testing.T) {
	errs := Validate(status{Value: "Late"})
	require.NotNil(t, errs)
	assert.Equal(t, "must be one of: Present, Absent", errs["status"])
}

func TestValidate_MinMessage(t *testing.T) {
	errs := Validate(markRequest{TimetableID: 1, Date: "2026-03-02", Statuses: []status{}})
	require.NotNil(t, errs)
	assert.Equal(t, "must have at least 1 entries", errs["entries"])
}
