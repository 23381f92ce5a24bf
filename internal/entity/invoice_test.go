package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easymed/billing/internal/entity"
)

func TestFormatInvoiceNumber(t *testing.T) {
	t.Parallel()

	require.Equal(t, "DDLI00001-2026", entity.FormatInvoiceNumber("DDLI", 1, 2026))
	require.Equal(t, "DDLI00042-2025", entity.FormatInvoiceNumber("DDLI", 42, 2025))
	require.Equal(t, "DDLI123456-2026", entity.FormatInvoiceNumber("DDLI", 123456, 2026))
}

func TestParseInvoiceNumber(t *testing.T) {
	t.Parallel()

	seq, year, err := entity.ParseInvoiceNumber("DDLI", "DDLI00042-2026")
	require.NoError(t, err)
	require.Equal(t, 42, seq)
	require.Equal(t, 2026, year)
}

func TestParseInvoiceNumber_RoundTrip(t *testing.T) {
	t.Parallel()

	number := entity.FormatInvoiceNumber("DDLI", 99999, 2024)

	seq, year, err := entity.ParseInvoiceNumber("DDLI", number)
	require.NoError(t, err)
	require.Equal(t, 99999, seq)
	require.Equal(t, 2024, year)
}

func TestParseInvoiceNumber_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number string
	}{
		{name: "wrong prefix", number: "XXXX00042-2026"},
		{name: "no year", number: "DDLI00042"},
		{name: "bad sequence", number: "DDLIabcde-2026"},
		{name: "bad year", number: "DDLI00042-year"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := entity.ParseInvoiceNumber("DDLI", tt.number)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)
		})
	}
}

func TestInvoiceItem_OutstandingLiability(t *testing.T) {
	t.Parallel()

	item := entity.InvoiceItem{PatientLiability: dec("200")}

	require.True(t, item.OutstandingLiability(dec("0")).Equal(dec("200")))
	require.True(t, item.OutstandingLiability(dec("50")).Equal(dec("150")))
	require.True(t, item.OutstandingLiability(dec("200")).IsZero())
	require.True(t, item.OutstandingLiability(dec("250")).IsZero())
}
