package cnpj

import (
	"testing"
)

func TestNormalizeBrasilAPI(t *testing.T) {
	body := []byte(`{
		"cnpj": "19131243000197",
		"razao_social": "OPEN KNOWLEDGE BRASIL",
		"nome_fantasia": "REDE PELO CONHECIMENTO LIVRE",
		"descricao_situacao_cadastral": "ATIVA",
		"data_inicio_atividade": "2013-10-03",
		"descricao_natureza_juridica": "Associação Privada",
		"descricao_porte": "DEMAIS",
		"capital_social": 0,
		"logradouro": "PAULISTA 37",
		"numero": "37",
		"bairro": "BELA VISTA",
		"municipio": "SAO PAULO",
		"uf": "SP",
		"cep": "01311902",
		"cnae_fiscal_principal": {"codigo": 9430800, "descricao": "Atividades de associações de defesa de direitos sociais"},
		"cnaes_secundarios": [{"codigo": 9493600, "descricao": "Atividades de organizações associativas"}],
		"qsa": [{"nome_socio": "FULANO DE TAL", "qualificacao_socio": "Presidente", "data_entrada_sociedade": "2019-02-08"}]
	}`)

	result := normalizeBrasilAPI(body)
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	c := result.Company
	if c.LegalName != "OPEN KNOWLEDGE BRASIL" {
		t.Errorf("LegalName = %q", c.LegalName)
	}
	if c.Status != "ATIVA" {
		t.Errorf("Status = %q", c.Status)
	}
	if c.MainActivity != "9430800 - Atividades de associações de defesa de direitos sociais" {
		t.Errorf("MainActivity = %q", c.MainActivity)
	}
	if len(c.SecondaryActivities) != 1 {
		t.Fatalf("SecondaryActivities = %v", c.SecondaryActivities)
	}
	if len(c.Partners) != 1 || c.Partners[0].Name != "FULANO DE TAL" || c.Partners[0].EntryDate != "2019-02-08" {
		t.Errorf("Partners = %+v", c.Partners)
	}
	if c.Address.City != "SAO PAULO" || c.Address.State != "SP" {
		t.Errorf("Address = %+v", c.Address)
	}
}

func TestNormalizeBrasilAPIMissingLegalName(t *testing.T) {
	result := normalizeBrasilAPI([]byte(`{"cnpj": "19131243000197"}`))
	if result.Success {
		t.Fatal("expected failure for record without legal name")
	}
	if result.Reason != ReasonIncompleteData {
		t.Errorf("reason = %q, want %q", result.Reason, ReasonIncompleteData)
	}
}

func TestNormalizeBrasilAPIUndecodable(t *testing.T) {
	result := normalizeBrasilAPI([]byte(`<html>rate limited</html>`))
	if result.Success {
		t.Fatal("expected failure for non-JSON payload")
	}
	if result.Reason != ReasonNormalizationError {
		t.Errorf("reason = %q, want %q", result.Reason, ReasonNormalizationError)
	}
}

func TestNormalizeReceitaWS(t *testing.T) {
	body := []byte(`{
		"cnpj": "19.131.243/0001-97",
		"nome": "OPEN KNOWLEDGE BRASIL",
		"fantasia": "OKBR",
		"situacao": "ATIVA",
		"abertura": "03/10/2013",
		"capital_social": "0.00",
		"atividade_principal": [{"code": "94.30-8-00", "text": "Defesa de direitos sociais"}],
		"atividades_secundarias": [],
		"qsa": [{"nome": "FULANO DE TAL", "qual": "16-Presidente"}]
	}`)

	result := normalizeReceitaWS(body)
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	c := result.Company
	if c.LegalName != "OPEN KNOWLEDGE BRASIL" {
		t.Errorf("LegalName = %q", c.LegalName)
	}
	if c.MainActivity != "94.30-8-00 - Defesa de direitos sociais" {
		t.Errorf("MainActivity = %q", c.MainActivity)
	}
	if c.SecondaryActivities == nil {
		t.Error("SecondaryActivities should be an empty slice, not nil")
	}
	if len(c.Partners) != 1 || c.Partners[0].Role != "16-Presidente" {
		t.Errorf("Partners = %+v", c.Partners)
	}
	if c.Partners[0].EntryDate != "" {
		t.Errorf("EntryDate should be empty for this source, got %q", c.Partners[0].EntryDate)
	}
}

func TestNormalizeCNPJWS(t *testing.T) {
	body := []byte(`{
		"razao_social": "OPEN KNOWLEDGE BRASIL",
		"capital_social": "0.00",
		"natureza_juridica": {"descricao": "Associação Privada"},
		"porte": {"texto": "Demais"},
		"estabelecimento": {
			"cnpj": "19131243000197",
			"situacao_cadastral": "Ativa",
			"tipo_logradouro": "Avenida",
			"logradouro": "Paulista",
			"numero": "37",
			"cidade": {"nome": "São Paulo"},
			"estado": {"sigla": "SP"},
			"ddd1": "11",
			"telefone1": "33334444",
			"atividade_principal": {"id": "9430800", "descricao": "Defesa de direitos sociais"}
		},
		"socios": [{"nome": "FULANO DE TAL", "qualificacao_socio": {"descricao": "Presidente"}, "data_entrada": "2019-02-08"}]
	}`)

	result := normalizeCNPJWS(body)
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	c := result.Company
	if c.Address.Street != "Avenida Paulista" {
		t.Errorf("Street = %q", c.Address.Street)
	}
	if c.Phone != "1133334444" {
		t.Errorf("Phone = %q", c.Phone)
	}
	if c.Partners[0].Role != "Presidente" {
		t.Errorf("Role = %q", c.Partners[0].Role)
	}
}

func TestActivityLabel(t *testing.T) {
	cases := []struct {
		code, desc, want string
	}{
		{"123", "Comércio", "123 - Comércio"},
		{"", "Comércio", "Comércio"},
		{"123", "", "123"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := activityLabel(tc.code, tc.desc); got != tc.want {
			t.Errorf("activityLabel(%q, %q) = %q, want %q", tc.code, tc.desc, got, tc.want)
		}
	}
}
