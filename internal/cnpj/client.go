package cnpj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aporte-capital/consultoria-service/internal/models"
	"github.com/rs/zerolog"
)

const (
	// Per-source request timeout.
	requestTimeout = 10 * time.Second
	// Registry payloads are small; anything past this is garbage.
	maxBodySize = 2 << 20
)

// Client queries the registry sources in priority order and returns the
// first successfully normalized record. It never returns an error: every
// source failure is folded into the next attempt, and exhausting the chain
// yields a tagged failure result.
type Client struct {
	httpClient *http.Client
	sources    []Source
	logger     zerolog.Logger
	now        func() time.Time
}

func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		sources:    DefaultSources(),
		logger:     logger,
		now:        time.Now,
	}
}

// Lookup resolves a raw identifier against the source chain. Formatting
// characters are stripped first; identifiers without exactly 14 digits fail
// immediately with no network call.
func (c *Client) Lookup(raw string) models.LookupResult {
	clean := OnlyDigits(raw)
	if len(clean) != 14 {
		return models.LookupResult{
			Reason:      ReasonValidation,
			Message:     "CNPJ deve ter 14 dígitos",
			ConsultedAt: c.now(),
		}
	}

	for _, src := range c.sources {
		body, err := c.fetch(src, clean)
		if err != nil {
			c.logger.Warn().Str("source", src.Name).Err(err).Msg("registry source failed, trying next")
			continue
		}

		result := normalizeSafe(src, body)
		if !result.Success {
			c.logger.Warn().Str("source", src.Name).Str("reason", result.Reason).Msg("registry payload rejected, trying next")
			continue
		}

		result.Source = src.Name
		result.Official = src.Official
		result.ConsultedAt = c.now()
		c.logger.Info().Str("source", src.Name).Str("cnpj", clean).Msg("registry lookup succeeded")
		return result
	}

	return models.LookupResult{
		Reason:      ReasonAllSourcesFailed,
		Message:     "Não foi possível consultar o CNPJ no momento. Todas as APIs estão indisponíveis.",
		ConsultedAt: c.now(),
	}
}

func (c *Client) fetch(src Source, cnpj string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf(src.URL, cnpj), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "AporteCapital/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	// ReceitaWS reports misses as 200 with an explicit error marker.
	var marker struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &marker); err == nil && marker.Status == "ERROR" {
		return nil, fmt.Errorf("source reported error status")
	}

	return body, nil
}

// normalizeSafe shields the lookup loop from a panicking normalizer; a panic
// counts as a normalization failure for that source only.
func normalizeSafe(src Source, body []byte) (result models.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(ReasonNormalizationError, "Erro ao processar dados da API")
		}
	}()
	return src.Normalize(body)
}

// OnlyDigits strips everything but decimal digits from s.
func OnlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
