package cnpj

import "github.com/aporte-capital/consultoria-service/internal/models"

// Failure reason tags carried by LookupResult.
const (
	ReasonValidation         = "validation"
	ReasonAllSourcesFailed   = "all_sources_failed"
	ReasonIncompleteData     = "incomplete_data"
	ReasonNormalizationError = "normalization_error"
)

// Source is one external registry API. URL carries a single %s verb for the
// cleaned 14-digit identifier. Adding a source means adding an entry here and
// a normalizer; the lookup loop never changes.
type Source struct {
	Name      string
	URL       string
	Official  bool
	Normalize func(body []byte) models.LookupResult
}

// DefaultSources returns the fallback chain in priority order. The official
// registry mirror goes first.
func DefaultSources() []Source {
	return []Source{
		{
			Name:      "BrasilAPI",
			URL:       "https://brasilapi.com.br/api/cnpj/v1/%s",
			Official:  true,
			Normalize: normalizeBrasilAPI,
		},
		{
			Name:      "ReceitaWS",
			URL:       "https://www.receitaws.com.br/v1/cnpj/%s",
			Official:  false,
			Normalize: normalizeReceitaWS,
		},
		{
			Name:      "CNPJ.ws",
			URL:       "https://publica.cnpj.ws/cnpj/%s",
			Official:  false,
			Normalize: normalizeCNPJWS,
		},
	}
}
