package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/pkg/config"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

func newTestScanner(t *testing.T, handler http.HandlerFunc, retries int) *ReceiptScanner {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := NewReceiptScanner(config.AIConfig{AnthropicAPIKey: "test-key", AnthropicModel: "test-model", MaxRetries: retries}, logger.Nop())
	s.endpoint = srv.URL
	return s
}

func textResponse(w http.ResponseWriter, text string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                         `{"a":1}`,
		"```json\n{\"a\":1}\n```":         `{"a":1}`,
		"Aquí está:\n{\"a\":1}\nSaludos.": `{"a":1}`,
		"sin json":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, extractJSON(in), in)
	}
}

func TestScanReceipt_ExtraeCampos(t *testing.T) {
	var got messageRequest
	s := newTestScanner(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		textResponse(w, "```json\n{\"vendor_name\":\" Café Central \",\"date\":\"2026-03-14\",\"total_amount\":42.5,\"currency\":\"eur\"}\n```")
	}, 0)

	fields, err := s.ScanReceipt(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Café Central", fields.VendorName)
	assert.Equal(t, "EUR", fields.Currency)
	require.NotNil(t, fields.Date)
	assert.Equal(t, "2026-03-14", fields.Date.Format("2006-01-02"))
	require.NotNil(t, fields.TotalAmount)
	assert.Equal(t, "42.5", fields.TotalAmount.String())
	assert.JSONEq(t, `{"vendor_name":" Café Central ","date":"2026-03-14","total_amount":42.5,"currency":"eur"}`, string(fields.Raw))

	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "image", got.Messages[0].Content[0].Type)
	assert.Equal(t, "image/png", got.Messages[0].Content[0].Source.MediaType)
	assert.Equal(t, "test-model", got.Model)
}

func TestScanReceipt_CamposOpcionales(t *testing.T) {
	s := newTestScanner(t, func(w http.ResponseWriter, _ *http.Request) {
		textResponse(w, `{"vendor_name":"","date":"ayer","total_amount":null,"currency":""}`)
	}, 0)

	fields, err := s.ScanReceipt(context.Background(), []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Nil(t, fields.Date)
	assert.Nil(t, fields.TotalAmount)
	assert.Empty(t, fields.Currency)
}

func TestScanReceipt_ReintentaErroresTransitorios(t *testing.T) {
	var calls int32
	s := newTestScanner(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		textResponse(w, `{"vendor_name":"Tienda"}`)
	}, 2)

	fields, err := s.ScanReceipt(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Tienda", fields.VendorName)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestScanReceipt_ErrorPermanenteNoReintenta(t *testing.T) {
	var calls int32
	s := newTestScanner(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"imagen inválida"}}`))
	}, 3)

	_, err := s.ScanReceipt(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imagen inválida")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestScanReceipt_SinAPIKey(t *testing.T) {
	s := NewReceiptScanner(config.AIConfig{}, logger.Nop())
	_, err := s.ScanReceipt(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
}
