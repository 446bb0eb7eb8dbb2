package validation

import (
	"testing"

	"aqua-backend/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code   string          `json:"code" validate:"required,max=5"`
	Date   string          `json:"date" validate:"required,date"`
	Qty    int             `json:"qty" validate:"gt=0"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Method string          `json:"method" validate:"omitempty,oneof=CASH BANK"`
	Lines  []int           `json:"lines" validate:"min=1"`
}

func valid() sample {
	return sample{Code: "C1", Date: "2024-05-01", Qty: 1, Amount: decimal.NewFromInt(10), Lines: []int{1}}
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		want   string
	}{
		{"required uses json name", func(s *sample) { s.Code = "" }, "code is required"},
		{"max", func(s *sample) { s.Code = "TOOLONG" }, "code must be at most 5 characters"},
		{"date", func(s *sample) { s.Date = "01/05/2024" }, "date must be a date in YYYY-MM-DD format"},
		{"gt", func(s *sample) { s.Qty = 0 }, "qty must be greater than 0"},
		{"negative decimal", func(s *sample) { s.Amount = decimal.NewFromInt(-1) }, "amount must not be negative"},
		{"oneof", func(s *sample) { s.Method = "CHEQUE" }, "method must be one of: CASH, BANK"},
		{"min", func(s *sample) { s.Lines = []int{} }, "lines must contain at least 1 item(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := Struct(s)
			require.Error(t, err)
			var v *apperr.ValidationError
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.want, v.Message)
		})
	}
}

func TestStructValid(t *testing.T) {
	require.NoError(t, Struct(valid()))
}

func TestOptionalDate(t *testing.T) {
	d, err := OptionalDate("from", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = OptionalDate("from", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	_, err = OptionalDate("to", "2024-13-01")
	assert.EqualError(t, err, "to must be a date in YYYY-MM-DD format")
}

func TestMinOnString(t *testing.T) {
	type pw struct {
		Password string `json:"password" validate:"required,min=8"`
	}
	assert.EqualError(t, Struct(pw{Password: "short"}), "password must be at least 8 characters")
}

func TestNestedFieldPath(t *testing.T) {
	type line struct {
		Qty int `json:"qty" validate:"gt=0"`
	}
	type doc struct {
		Lines []line `json:"lines" validate:"required,min=1,dive"`
	}
	err := Struct(doc{Lines: []line{{Qty: 1}, {Qty: 0}}})
	assert.EqualError(t, err, "lines[1].qty must be greater than 0")
}
