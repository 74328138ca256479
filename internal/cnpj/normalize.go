package cnpj

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aporte-capital/consultoria-service/internal/models"
)

// Normalizers are pure: raw source payload in, LookupResult out. Fields the
// source omits become empty strings or empty slices; a record without a legal
// name is incomplete_data; undecodable payloads are normalization_error.
// Source, Official and ConsultedAt are stamped by the lookup loop afterwards.

func failure(reason, message string) models.LookupResult {
	return models.LookupResult{Reason: reason, Message: message}
}

func incomplete() models.LookupResult {
	return failure(ReasonIncompleteData, "Dados incompletos retornados pela API")
}

func undecodable() models.LookupResult {
	return failure(ReasonNormalizationError, "Erro ao processar dados da API")
}

func finish(rec models.CompanyRecord) models.LookupResult {
	if rec.LegalName == "" {
		return incomplete()
	}
	if rec.SecondaryActivities == nil {
		rec.SecondaryActivities = []string{}
	}
	if rec.Partners == nil {
		rec.Partners = []models.Partner{}
	}
	return models.LookupResult{Success: true, Company: &rec}
}

type brasilAPIPayload struct {
	CNPJ             string      `json:"cnpj"`
	RazaoSocial      string      `json:"razao_social"`
	NomeFantasia     string      `json:"nome_fantasia"`
	Situacao         string      `json:"descricao_situacao_cadastral"`
	DataSituacao     string      `json:"data_situacao_cadastral"`
	MotivoSituacao   string      `json:"descricao_motivo_situacao_cadastral"`
	DataAbertura     string      `json:"data_inicio_atividade"`
	NaturezaJuridica string      `json:"descricao_natureza_juridica"`
	Porte            string      `json:"descricao_porte"`
	CapitalSocial    json.Number `json:"capital_social"`
	Logradouro       string      `json:"logradouro"`
	Numero           string      `json:"numero"`
	Complemento      string      `json:"complemento"`
	Bairro           string      `json:"bairro"`
	Municipio        string      `json:"municipio"`
	UF               string      `json:"uf"`
	CEP              string      `json:"cep"`
	Telefone         string      `json:"ddd_telefone_1"`
	Email            string      `json:"email"`
	CNAEPrincipal    *struct {
		Codigo    json.Number `json:"codigo"`
		Descricao string      `json:"descricao"`
	} `json:"cnae_fiscal_principal"`
	CNAEsSecundarios []struct {
		Codigo    json.Number `json:"codigo"`
		Descricao string      `json:"descricao"`
	} `json:"cnaes_secundarios"`
	QSA []struct {
		Nome        string `json:"nome_socio"`
		Qualificacao string `json:"qualificacao_socio"`
		DataEntrada string `json:"data_entrada_sociedade"`
	} `json:"qsa"`
}

func normalizeBrasilAPI(body []byte) models.LookupResult {
	var data brasilAPIPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return undecodable()
	}

	rec := models.CompanyRecord{
		CNPJ:             data.CNPJ,
		LegalName:        data.RazaoSocial,
		TradeName:        data.NomeFantasia,
		Status:           data.Situacao,
		StatusDate:       data.DataSituacao,
		StatusReason:     data.MotivoSituacao,
		FoundedAt:        data.DataAbertura,
		LegalNature:      data.NaturezaJuridica,
		Size:             data.Porte,
		Capital:          data.CapitalSocial.String(),
		Address: models.Address{
			Street:     data.Logradouro,
			Number:     data.Numero,
			Complement: data.Complemento,
			District:   data.Bairro,
			City:       data.Municipio,
			State:      data.UF,
			PostalCode: data.CEP,
		},
		Phone: data.Telefone,
		Email: data.Email,
	}

	if data.CNAEPrincipal != nil {
		rec.MainActivity = activityLabel(data.CNAEPrincipal.Codigo.String(), data.CNAEPrincipal.Descricao)
	}
	for _, cnae := range data.CNAEsSecundarios {
		rec.SecondaryActivities = append(rec.SecondaryActivities, activityLabel(cnae.Codigo.String(), cnae.Descricao))
	}
	for _, socio := range data.QSA {
		rec.Partners = append(rec.Partners, models.Partner{
			Name:      socio.Nome,
			Role:      socio.Qualificacao,
			EntryDate: socio.DataEntrada,
		})
	}

	return finish(rec)
}

type receitaWSPayload struct {
	CNPJ             string      `json:"cnpj"`
	Nome             string      `json:"nome"`
	Fantasia         string      `json:"fantasia"`
	Situacao         string      `json:"situacao"`
	Abertura         string      `json:"abertura"`
	NaturezaJuridica string      `json:"natureza_juridica"`
	Porte            string      `json:"porte"`
	CapitalSocial    json.Number `json:"capital_social"`
	Logradouro       string      `json:"logradouro"`
	Numero           string      `json:"numero"`
	Complemento      string      `json:"complemento"`
	Bairro           string      `json:"bairro"`
	Municipio        string      `json:"municipio"`
	UF               string      `json:"uf"`
	CEP              string      `json:"cep"`
	Telefone         string      `json:"telefone"`
	Email            string      `json:"email"`
	AtividadePrincipal []struct {
		Code string `json:"code"`
		Text string `json:"text"`
	} `json:"atividade_principal"`
	AtividadesSecundarias []struct {
		Code string `json:"code"`
		Text string `json:"text"`
	} `json:"atividades_secundarias"`
	QSA []struct {
		Nome string `json:"nome"`
		Qual string `json:"qual"`
	} `json:"qsa"`
}

func normalizeReceitaWS(body []byte) models.LookupResult {
	var data receitaWSPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return undecodable()
	}

	rec := models.CompanyRecord{
		CNPJ:             data.CNPJ,
		LegalName:        data.Nome,
		TradeName:        data.Fantasia,
		Status:           data.Situacao,
		FoundedAt:        data.Abertura,
		LegalNature:      data.NaturezaJuridica,
		Size:             data.Porte,
		Capital:          data.CapitalSocial.String(),
		Address: models.Address{
			Street:     data.Logradouro,
			Number:     data.Numero,
			Complement: data.Complemento,
			District:   data.Bairro,
			City:       data.Municipio,
			State:      data.UF,
			PostalCode: data.CEP,
		},
		Phone: data.Telefone,
		Email: data.Email,
	}

	if len(data.AtividadePrincipal) > 0 {
		rec.MainActivity = activityLabel(data.AtividadePrincipal[0].Code, data.AtividadePrincipal[0].Text)
	}
	for _, ativ := range data.AtividadesSecundarias {
		rec.SecondaryActivities = append(rec.SecondaryActivities, activityLabel(ativ.Code, ativ.Text))
	}
	for _, socio := range data.QSA {
		// ReceitaWS omits the partnership entry date.
		rec.Partners = append(rec.Partners, models.Partner{Name: socio.Nome, Role: socio.Qual})
	}

	return finish(rec)
}

type cnpjWSPayload struct {
	RazaoSocial      string      `json:"razao_social"`
	CapitalSocial    json.Number `json:"capital_social"`
	NaturezaJuridica struct {
		Descricao string `json:"descricao"`
	} `json:"natureza_juridica"`
	Porte struct {
		Texto string `json:"texto"`
	} `json:"porte"`
	Estabelecimento struct {
		CNPJ           string `json:"cnpj"`
		NomeFantasia   string `json:"nome_fantasia"`
		Situacao       string `json:"situacao_cadastral"`
		DataSituacao   string `json:"data_situacao_cadastral"`
		DataAbertura   string `json:"data_inicio_atividade"`
		TipoLogradouro string `json:"tipo_logradouro"`
		Logradouro     string `json:"logradouro"`
		Numero         string `json:"numero"`
		Complemento    string `json:"complemento"`
		Bairro         string `json:"bairro"`
		Cidade         struct {
			Nome string `json:"nome"`
		} `json:"cidade"`
		Estado struct {
			Sigla string `json:"sigla"`
		} `json:"estado"`
		CEP       string `json:"cep"`
		DDD       string `json:"ddd1"`
		Telefone  string `json:"telefone1"`
		Email     string `json:"email"`
		Atividade struct {
			ID        string `json:"id"`
			Descricao string `json:"descricao"`
		} `json:"atividade_principal"`
		AtividadesSecundarias []struct {
			ID        string `json:"id"`
			Descricao string `json:"descricao"`
		} `json:"atividades_secundarias"`
	} `json:"estabelecimento"`
	Socios []struct {
		Nome         string `json:"nome"`
		Qualificacao struct {
			Descricao string `json:"descricao"`
		} `json:"qualificacao_socio"`
		DataEntrada string `json:"data_entrada"`
	} `json:"socios"`
}

func normalizeCNPJWS(body []byte) models.LookupResult {
	var data cnpjWSPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return undecodable()
	}

	est := data.Estabelecimento
	street := strings.TrimSpace(est.TipoLogradouro + " " + est.Logradouro)

	rec := models.CompanyRecord{
		CNPJ:             est.CNPJ,
		LegalName:        data.RazaoSocial,
		TradeName:        est.NomeFantasia,
		Status:           est.Situacao,
		StatusDate:       est.DataSituacao,
		FoundedAt:        est.DataAbertura,
		LegalNature:      data.NaturezaJuridica.Descricao,
		Size:             data.Porte.Texto,
		Capital:          data.CapitalSocial.String(),
		Address: models.Address{
			Street:     street,
			Number:     est.Numero,
			Complement: est.Complemento,
			District:   est.Bairro,
			City:       est.Cidade.Nome,
			State:      est.Estado.Sigla,
			PostalCode: est.CEP,
		},
		Phone: strings.TrimSpace(est.DDD + est.Telefone),
		Email: est.Email,
	}

	rec.MainActivity = activityLabel(est.Atividade.ID, est.Atividade.Descricao)
	for _, ativ := range est.AtividadesSecundarias {
		rec.SecondaryActivities = append(rec.SecondaryActivities, activityLabel(ativ.ID, ativ.Descricao))
	}
	for _, socio := range data.Socios {
		rec.Partners = append(rec.Partners, models.Partner{
			Name:      socio.Nome,
			Role:      socio.Qualificacao.Descricao,
			EntryDate: socio.DataEntrada,
		})
	}

	return finish(rec)
}

func activityLabel(code, description string) string {
	if code == "" && description == "" {
		return ""
	}
	if code == "" {
		return description
	}
	if description == "" {
		return code
	}
	return fmt.Sprintf("%s - %s", code, description)
}
