package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190b7a1-3f52-7000-8000-0123456789ab"))
	assert.True(t, IsValidUUID("123E4567-E89B-42D3-A456-426614174000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("123e4567e89b42d3a456426614174000"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-06-01")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("01-06-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestValidationErrors_ErrorAndToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "type", Message: "must be 'earning' or 'deduction'"},
	}

	assert.Contains(t, errs.Error(), "name: is required")
	m := errs.ToMap()
	assert.Equal(t, "is required", m["name"])
	assert.Len(t, m, 2)
}
