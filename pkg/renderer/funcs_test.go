package renderer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "25.50 JOD", Money(decimal.RequireFromString("25.5"), "JOD"))
	assert.Equal(t, "3.00 JOD", Money("3", "JOD"))
	assert.Equal(t, "1.25 JOD", Money(1.25, "JOD"))
	assert.Equal(t, "0.00 JOD", Money(nil, "JOD"))
	assert.Equal(t, "n/a", Money("n/a", "JOD"))
}

func TestFieldValue(t *testing.T) {
	assert.Equal(t, "7", FieldValue(float64(7)))
	assert.Equal(t, "2.5", FieldValue(2.5))
	assert.Equal(t, "Matte, Glossy", FieldValue([]interface{}{"Matte", "Glossy"}))
	assert.Equal(t, "Yes", FieldValue(true))
	assert.Equal(t, "", FieldValue(nil))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "01 Mar 2025", Date("2025-03-01T10:00:00Z"))
	assert.Equal(t, "01 Mar 2025", Date(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "yesterday", Date("yesterday"))
}

func TestSeq(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Seq(3))
	assert.Empty(t, Seq(0))
}

func TestErrorUnder(t *testing.T) {
	errs := map[string]string{
		"personalInfo.phoneNumbers[1]":   "second phone is invalid",
		"personalInfo.phoneNumbersExtra": "unrelated",
		"addons[0].value":                "value is required",
	}
	assert.Equal(t, "second phone is invalid", ErrorUnder(errs, "personalInfo.phoneNumbers"))
	assert.Equal(t, "value is required", ErrorUnder(errs, "addons"))
	assert.Empty(t, ErrorUnder(errs, "deliveryInfo"))
	assert.Empty(t, ErrorUnder(nil, "addons"))
}
