package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/aporte-capital/consultoria-service/internal/models"
)

func consultationReq() models.ConsultationRequest {
	return models.ConsultationRequest{
		NomeCompleto:     "Maria Silva",
		Email:            "maria@example.com",
		Telefone:         "92999887766",
		Empresa:          "Silva Comércio LTDA",
		CNPJ:             "19.131.243/0001-97",
		FaturamentoAnual: "R$ 500.000",
		TempoExistencia:  "5 anos",
		TipoConsultoria:  "Crédito",
		Mensagem:         "Preciso de capital de giro",
	}
}

func TestRenderConsultationEmailWithVerifiedLookup(t *testing.T) {
	lookup := &models.LookupResult{
		Success: true,
		Company: &models.CompanyRecord{
			LegalName: "SILVA COMERCIO LTDA",
			Status:    "ATIVA",
			Partners:  []models.Partner{{Name: "Maria Silva", Role: "Sócia-Administradora"}},
		},
		Source:      "BrasilAPI",
		Official:    true,
		ConsultedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	html, err := RenderConsultationEmail(consultationReq(), lookup)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"SILVA COMERCIO LTDA",
		"ATIVA",
		"BrasilAPI",
		"(Oficial)",
		"01/06/2025 12:00:00",
		"Quadro Societário",
		"Dados do CNPJ verificados automaticamente",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestRenderConsultationEmailWithFailedLookup(t *testing.T) {
	lookup := &models.LookupResult{
		Reason:  "all_sources_failed",
		Message: "Não foi possível consultar o CNPJ no momento. Todas as APIs estão indisponíveis.",
	}

	html, err := RenderConsultationEmail(consultationReq(), lookup)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "Erro na consulta:") {
		t.Error("failure notice missing")
	}
	if !strings.Contains(html, "all_sources_failed") {
		t.Error("failure reason missing")
	}
	if strings.Contains(html, "Dados Oficiais do CNPJ") {
		t.Error("verified section rendered for a failed lookup")
	}
}

func TestRenderConsultationEmailWithoutLookup(t *testing.T) {
	html, err := RenderConsultationEmail(consultationReq(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "Consulta CNPJ") || strings.Contains(html, "Dados Oficiais") {
		t.Error("registry section rendered without a lookup")
	}
	if !strings.Contains(html, "Maria Silva") {
		t.Error("requester data missing")
	}
}

func TestRenderContactEmail(t *testing.T) {
	req := models.ContactRequest{
		Nome:        "João",
		Email:       "joao@example.com",
		Telefone:    "92988776655",
		Empresa:     "Acme",
		ValorAporte: "100.000",
	}

	html, err := RenderContactEmail(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "João") || !strings.Contains(html, "Acme") {
		t.Error("request data missing from body")
	}
	if !strings.Contains(html, "R$ 100.000") {
		t.Error("requested amount missing")
	}
}
