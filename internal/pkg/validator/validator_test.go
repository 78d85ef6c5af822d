package validator

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

type batchRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,uuid"`
	Comments    string   `json:"comments" validate:"max=10"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func TestStruct(t *testing.T) {
	ok := batchRequest{EmployeeIDs: []string{"0192c9a4-2b8e-7c4d-9f10-3a5b6c7d8e9f"}}
	require.NoError(t, Struct(&ok))

	bad := batchRequest{
		EmployeeIDs: []string{"not-a-uuid"},
		Comments:    "this comment is far too long",
		Status:      "unknown",
	}
	err := Struct(&bad)
	require.Error(t, err)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	fields := errs.ToMap()
	assert.Equal(t, "must be a valid UUID", fields["employee_ids[0]"])
	assert.Equal(t, "must be at most 10", fields["comments"])
	assert.Contains(t, fields["status"], "must be one of")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestStruct_Required(t *testing.T) {
	err := Struct(&batchRequest{})
	require.Error(t, err)
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "is required", errs.ToMap()["employee_ids"])
}

func TestValidationErrors_Helpers(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.NonNegative("principal", decimal.NewFromInt(10))
	assert.NoError(t, errs.Err())

	errs.NonNegative("principal", decimal.NewFromInt(-1))
	errs.Add("term_months", "must be greater than 0")
	require.Error(t, errs.Err())
	assert.Equal(t, "principal: must be non-negative; term_months: must be greater than 0", errs.Error())
	assert.ErrorIs(t, errs.Err(), apperror.ErrInvalidInput)
}
