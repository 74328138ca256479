package whatsapp

import (
	"strings"
	"testing"

	"github.com/aporte-capital/consultoria-service/internal/models"
)

func sampleRequest() models.ConsultationRequest {
	return models.ConsultationRequest{
		NomeCompleto:     "Maria Silva",
		Email:            "maria@example.com",
		Telefone:         "92999887766",
		Empresa:          "Silva Comércio LTDA",
		CNPJ:             "19131243000197",
		FaturamentoAnual: "R$ 500.000",
		TempoExistencia:  "5 anos",
		TipoConsultoria:  "Crédito",
		Mensagem:         "Preciso de capital de giro",
	}
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("(92) 99988-9392", "olá mundo")
	if !strings.HasPrefix(link, "https://wa.me/5592999889392?text=") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "ol%C3%A1+mundo") && !strings.Contains(link, "ol%C3%A1%20mundo") {
		t.Errorf("message not escaped: %q", link)
	}
}

func TestDeepLinkKeepsCountryCode(t *testing.T) {
	link := DeepLink("5592999889392", "oi")
	if strings.Contains(link, "wa.me/5555") {
		t.Errorf("country code duplicated: %q", link)
	}
	if !strings.Contains(link, "wa.me/5592999889392") {
		t.Errorf("link = %q", link)
	}
}

func TestClientMessageWithoutFiles(t *testing.T) {
	msg := ClientMessage(sampleRequest(), 0)
	if !strings.Contains(msg, "Nenhum documento anexado") {
		t.Error("missing no-documents notice")
	}
	if !strings.Contains(msg, "Maria Silva") || !strings.Contains(msg, "Silva Comércio LTDA") {
		t.Error("requester data missing from message")
	}
}

func TestClientMessageNeverCarriesDownloadLink(t *testing.T) {
	msg := ClientMessage(sampleRequest(), 3)
	if strings.Contains(msg, "http") {
		t.Errorf("client message leaked a link:\n%s", msg)
	}
	if !strings.Contains(msg, "3 arquivo(s)") {
		t.Error("file count missing")
	}
}

func TestTeamMessageCarriesDownloadLink(t *testing.T) {
	url := "http://localhost:3001/download/AABBCCDD11223344"
	msg := TeamMessage(sampleRequest(), url, 2)
	if !strings.Contains(msg, url) {
		t.Error("download link missing from team message")
	}
	if !strings.Contains(msg, "2 arquivo(s)") {
		t.Error("file count missing")
	}
}

func TestTeamMessageWithoutFiles(t *testing.T) {
	msg := TeamMessage(sampleRequest(), "", 0)
	if strings.Contains(msg, "http") {
		t.Errorf("empty submission produced a link:\n%s", msg)
	}
	if !strings.Contains(msg, "Nenhum documento anexado") {
		t.Error("missing no-documents notice")
	}
}
