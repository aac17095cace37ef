package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"999.5":     "999.50",
		"25000":     "25,000.00",
		"1234567.8": "1,234,567.80",
		"-1234.5":   "-1,234.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)
	inv := &entity.Invoice{
		InvoiceNumber: "INV-000001",
		Status:        entity.InvoiceDraft,
		DueDate:       &due,
		TotalAmount:   decimal.RequireFromString("119.00"),
		TaxAmount:     decimal.RequireFromString("19.00"),
		CreatedAt:     time.Now(),
		Items: []entity.InvoiceItem{
			{Description: "Masaje", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(100)},
		},
	}
	company := &entity.Company{Name: "Acme Spa", Slug: "acme-spa"}

	for name, client := range map[string]*entity.Client{
		"con cliente": {Name: "María", Email: "maria@x.com"},
		"sin cliente": nil,
	} {
		out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, company, client)
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), name)
	}
}
