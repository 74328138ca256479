package models

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ConsultationRequest holds the text fields of the consultancy form, parsed
// out of the multipart request at the boundary.
type ConsultationRequest struct {
	NomeCompleto     string `form:"nomeCompleto" json:"nomeCompleto"`
	Email            string `form:"email" json:"email"`
	Telefone         string `form:"telefone" json:"telefone"`
	Empresa          string `form:"empresa" json:"empresa"`
	CNPJ             string `form:"cnpj" json:"cnpj"`
	FaturamentoAnual string `form:"faturamentoAnual" json:"faturamentoAnual"`
	TempoExistencia  string `form:"tempoExistencia" json:"tempoExistencia"`
	TipoConsultoria  string `form:"tipoConsultoria" json:"tipoConsultoria"`
	Mensagem         string `form:"mensagem" json:"mensagem"`
	OutrosDocumentos string `form:"outrosDocumentos" json:"outrosDocumentos"`
}

// Validate checks every field and returns the full list of problems instead
// of stopping at the first one.
func (r *ConsultationRequest) Validate() []string {
	var errs []string

	if len(strings.TrimSpace(r.NomeCompleto)) < 2 {
		errs = append(errs, "Nome completo é obrigatório e deve ter pelo menos 2 caracteres")
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "Email válido é obrigatório")
	}
	if len(strings.TrimSpace(r.Telefone)) < 10 {
		errs = append(errs, "Telefone válido é obrigatório")
	}
	if len(strings.TrimSpace(r.Empresa)) < 2 {
		errs = append(errs, "Nome da empresa é obrigatório")
	}
	if strings.TrimSpace(r.CNPJ) == "" {
		errs = append(errs, "CNPJ é obrigatório e deve ser válido")
	} else if len(onlyDigits(r.CNPJ)) != 14 {
		errs = append(errs, "CNPJ deve conter 14 dígitos")
	}
	if r.TempoExistencia == "" {
		errs = append(errs, "Tempo de existência da empresa é obrigatório")
	}
	if r.FaturamentoAnual == "" {
		errs = append(errs, "Faturamento anual é obrigatório")
	}
	if r.TipoConsultoria == "" {
		errs = append(errs, "Tipo de consultoria é obrigatório")
	}
	if len(strings.TrimSpace(r.Mensagem)) < 5 {
		errs = append(errs, "Descrição do projeto é obrigatória e deve ter pelo menos 5 caracteres")
	}

	return errs
}

// ContactRequest is the body of the attachment-free sibling endpoint.
type ContactRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Empresa     string `json:"empresa"`
	CNPJ        string `json:"cnpj"`
	ValorAporte string `json:"valorAporte"`
	Descricao   string `json:"descricao"`
}

// Validate reports the missing required fields of the contact form.
func (r *ContactRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Nome) == "" {
		errs = append(errs, "Nome é obrigatório")
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "Email válido é obrigatório")
	}
	if strings.TrimSpace(r.Telefone) == "" {
		errs = append(errs, "Telefone é obrigatório")
	}
	return errs
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
