package models

import "time"

// Address is the registered address of a company as reported by a registry source.
type Address struct {
	Street     string `json:"logradouro"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"municipio"`
	State      string `json:"uf"`
	PostalCode string `json:"cep"`
}

// Partner is one entry of a company's ownership board.
type Partner struct {
	Name      string `json:"nome"`
	Role      string `json:"qualificacao"`
	EntryDate string `json:"data_entrada"`
}

// CompanyRecord is the canonical shape every registry source is normalized
// into. Absent fields are empty strings or empty slices, never nil pointers.
type CompanyRecord struct {
	CNPJ                string   `json:"cnpj"`
	LegalName           string   `json:"razao_social"`
	TradeName           string   `json:"nome_fantasia"`
	Status              string   `json:"situacao"`
	StatusDate          string   `json:"data_situacao"`
	StatusReason        string   `json:"motivo_situacao"`
	FoundedAt           string   `json:"data_abertura"`
	LegalNature         string   `json:"natureza_juridica"`
	Size                string   `json:"porte"`
	Capital             string   `json:"capital_social"`
	Address             Address  `json:"endereco"`
	Phone               string   `json:"telefone"`
	Email               string   `json:"email"`
	MainActivity        string   `json:"atividade_principal"`
	SecondaryActivities []string `json:"atividades_secundarias"`
	Partners            []Partner `json:"socios"`
}

// LookupResult is the outcome of one registry lookup. A result is successful
// iff the normalized record carries a non-empty legal name; otherwise Reason
// holds a machine tag and Message a human-readable explanation.
type LookupResult struct {
	Success     bool           `json:"success"`
	Company     *CompanyRecord `json:"company,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Message     string         `json:"message,omitempty"`
	Source      string         `json:"source"`
	Official    bool           `json:"official"`
	ConsultedAt time.Time      `json:"consulted_at"`
}
