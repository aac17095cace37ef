package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/pkg/config"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// Verificar en tiempo de compilación que ReceiptScanner implementa el puerto.
var _ ports.ReceiptScanner = (*ReceiptScanner)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	receiptPrompt = `Extract the data of this receipt.
Return ONLY a valid JSON object (no markdown, no code fences) with this exact structure:
{
  "vendor_name": "<merchant name or empty string>",
  "date": "<YYYY-MM-DD or empty string>",
  "total_amount": <number or null>,
  "currency": "<ISO 4217 code or empty string>",
  "items": [{"description": "<text>", "amount": <number>}]
}
Do not include any text outside the JSON object.`
)

// ReceiptScanner adaptador OCR sobre la API de mensajes de Anthropic (visión).
// Usa net/http; no requiere el SDK oficial.
type ReceiptScanner struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries uint64
	httpClient *http.Client
	log        *logger.Logger
}

// NewReceiptScanner construye el adaptador.
// Si la API key está vacía las llamadas devuelven error descriptivo en lugar de panic.
func NewReceiptScanner(cfg config.AIConfig, log *logger.Logger) *ReceiptScanner {
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &ReceiptScanner{
		apiKey:     cfg.AnthropicAPIKey,
		model:      cfg.AnthropicModel,
		endpoint:   anthropicMessagesURL,
		maxRetries: uint64(retries),
		httpClient: &http.Client{
			// Timeout de red; el caso de uso impone además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
		log: log.Named("receipt_scanner"),
	}
}

// ── Protocolo Messages API ───────────────────────────────────────────────────

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// receiptPayload forma del JSON que devuelve el modelo.
type receiptPayload struct {
	VendorName  string           `json:"vendor_name"`
	Date        string           `json:"date"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Currency    string           `json:"currency"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ScanReceipt envía la imagen (o PDF) al modelo y devuelve los campos extraídos.
// Errores de red, 429 y 5xx se reintentan con backoff exponencial; el resto es permanente.
func (s *ReceiptScanner) ScanReceipt(ctx context.Context, image []byte, mimeType string) (*ports.ReceiptFields, error) {
	if s.apiKey == "" {
		return nil, errors.New("AI: ANTHROPIC_API_KEY no configurado")
	}

	blockType := "image"
	if mimeType == "application/pdf" {
		blockType = "document"
	}
	payload := messageRequest{
		Model:     s.model,
		MaxTokens: 1024,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{Type: blockType, Source: &imageSource{
					Type: "base64", MediaType: mimeType, Data: base64.StdEncoding.EncodeToString(image),
				}},
				{Type: "text", Text: receiptPrompt},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	var text string
	attempt := 0
	op := func() error {
		attempt++
		t, err := s.call(ctx, body)
		if err != nil {
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("llamada OCR fallida")
			return err
		}
		text = t
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	cleanJSON := extractJSON(text)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", text)
	}
	var parsed receiptPayload
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON del recibo: %w (JSON extraído: %s)", err, cleanJSON)
	}

	fields := &ports.ReceiptFields{
		VendorName:  strings.TrimSpace(parsed.VendorName),
		TotalAmount: parsed.TotalAmount,
		Currency:    strings.ToUpper(strings.TrimSpace(parsed.Currency)),
		Raw:         json.RawMessage(cleanJSON),
	}
	if d, err := time.Parse("2006-01-02", strings.TrimSpace(parsed.Date)); err == nil {
		fields.Date = &d
	}
	return fields, nil
}

// call hace un POST y devuelve el texto del primer bloque. Marca como permanentes
// los errores que no mejoran reintentando.
func (s *ReceiptScanner) call(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("AI: crear HTTP request: %w", err))
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err()))
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
		var errResp messageResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			apiErr = fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", apiErr
		}
		return "", backoff.Permanent(apiErr)
	}

	var msg messageResponse
	if err := json.Unmarshal(rawBody, &msg); err != nil {
		return "", backoff.Permanent(fmt.Errorf("AI: deserializar respuesta: %w", err))
	}
	for _, c := range msg.Content {
		if c.Type == "text" && c.Text != "" {
			return c.Text, nil
		}
	}
	return "", backoff.Permanent(errors.New("AI: el modelo devolvió respuesta vacía"))
}

// extractJSON extrae el primer objeto JSON de un texto libre.
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
