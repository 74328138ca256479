package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/aporte-capital/consultoria-service/internal/models"
)

// Email bodies mirror the layout the landing page always used: submitted
// fields first, then the registry section (verified data or the lookup
// failure notice), then the consultancy details.

var consultationTmpl = template.Must(template.New("consultation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 700px; margin: 0 auto; padding: 20px; }
    .header { background: #3b82f6; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background: #f9f9f9; }
    .field { margin-bottom: 15px; }
    .label { font-weight: bold; color: #555; }
    .value { margin-top: 5px; padding: 10px; background: white; border-radius: 5px; white-space: pre-line; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    .lookup-ok { background: #ecfdf5; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
    .lookup-failed { background: #fef2f2; padding: 15px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #dc2626; }
</style>
</head>
<body>
<div class="container">
    <div class="header"><h1>Nova Solicitação de Consultoria</h1></div>
    <div class="content">
        <h2>Dados do Solicitante</h2>
        <div class="field"><div class="label">Nome:</div><div class="value">{{.Req.NomeCompleto}}</div></div>
        <div class="field"><div class="label">Email:</div><div class="value">{{.Req.Email}}</div></div>
        <div class="field"><div class="label">Telefone:</div><div class="value">{{.Req.Telefone}}</div></div>
        <div class="field"><div class="label">Empresa:</div><div class="value">{{.Req.Empresa}}</div></div>

        <h2>Dados Empresariais Informados</h2>
        <div class="field"><div class="label">CNPJ:</div><div class="value">{{.Req.CNPJ}}</div></div>
        <div class="field"><div class="label">Faturamento Anual:</div><div class="value">{{.Req.FaturamentoAnual}}</div></div>
        <div class="field"><div class="label">Tempo de Existência:</div><div class="value">{{.Req.TempoExistencia}}</div></div>

        {{if .Lookup}}{{if .Lookup.Success}}
        <h2 style="color: #059669;">📊 Dados Oficiais do CNPJ</h2>
        <div class="lookup-ok">
            <p style="margin: 0; font-size: 12px; color: #065f46;">
                <strong>Fonte:</strong> {{.Lookup.Source}} {{if .Lookup.Official}}(Oficial){{else}}(Terceiros){{end}} |
                <strong>Consultado em:</strong> {{.ConsultedAt}}
            </p>
        </div>
        <div class="field"><div class="label">🏢 Razão Social:</div><div class="value" style="font-weight: bold; color: #059669;">{{.Lookup.Company.LegalName}}</div></div>
        {{with .Lookup.Company.TradeName}}<div class="field"><div class="label">🏪 Nome Fantasia:</div><div class="value">{{.}}</div></div>{{end}}
        <div class="field"><div class="label">📋 Situação Cadastral:</div><div class="value">{{.Lookup.Company.Status}}{{with .Lookup.Company.StatusDate}} (desde {{.}}){{end}}</div></div>
        {{with .Lookup.Company.StatusReason}}<div class="field"><div class="label">📝 Motivo da Situação:</div><div class="value">{{.}}</div></div>{{end}}
        <div class="field"><div class="label">📅 Data de Abertura:</div><div class="value">{{.Lookup.Company.FoundedAt}}</div></div>
        {{with .Lookup.Company.LegalNature}}<div class="field"><div class="label">⚖️ Natureza Jurídica:</div><div class="value">{{.}}</div></div>{{end}}
        {{with .Lookup.Company.Size}}<div class="field"><div class="label">📏 Porte da Empresa:</div><div class="value">{{.}}</div></div>{{end}}
        {{with .Lookup.Company.Capital}}<div class="field"><div class="label">💰 Capital Social:</div><div class="value">R$ {{.}}</div></div>{{end}}
        <h3>📍 Endereço Oficial</h3>
        <div class="field"><div class="label">🏠 Endereço Completo:</div><div class="value">{{.Lookup.Company.Address.Street}} {{.Lookup.Company.Address.Number}}{{with .Lookup.Company.Address.Complement}}, {{.}}{{end}}
{{.Lookup.Company.Address.District}} - {{.Lookup.Company.Address.City}}/{{.Lookup.Company.Address.State}}
CEP: {{.Lookup.Company.Address.PostalCode}}</div></div>
        {{with .Lookup.Company.Phone}}<div class="field"><div class="label">📱 Telefone:</div><div class="value">{{.}}</div></div>{{end}}
        {{with .Lookup.Company.Email}}<div class="field"><div class="label">📧 Email:</div><div class="value">{{.}}</div></div>{{end}}
        {{with .Lookup.Company.MainActivity}}<div class="field"><div class="label">🏭 Atividade Principal:</div><div class="value">{{.}}</div></div>{{end}}
        {{if .Lookup.Company.SecondaryActivities}}
        <div class="field"><div class="label">🔧 Atividades Secundárias:</div><div class="value">{{range .Lookup.Company.SecondaryActivities}}• {{.}}
{{end}}</div></div>
        {{end}}
        {{if .Lookup.Company.Partners}}
        <h3>👥 Quadro Societário</h3>
        <div class="field"><div class="value">{{range .Lookup.Company.Partners}}<strong>{{.Name}}</strong> — {{.Role}}{{with .EntryDate}} (entrada: {{.}}){{end}}<br>{{end}}</div></div>
        {{end}}
        {{else}}
        <h2 style="color: #dc2626;">⚠️ Consulta CNPJ</h2>
        <div class="lookup-failed">
            <p style="margin: 0; color: #991b1b;">
                <strong>Erro na consulta:</strong> {{.Lookup.Message}}<br>
                <small>Motivo: {{.Lookup.Reason}} | Consultado em: {{.ConsultedAt}}</small>
            </p>
        </div>
        {{end}}{{end}}

        <h2>Detalhes da Consultoria</h2>
        <div class="field"><div class="label">Tipo de Consultoria:</div><div class="value">{{.Req.TipoConsultoria}}</div></div>
        <div class="field"><div class="label">Descrição do Projeto:</div><div class="value">{{if .Req.Mensagem}}{{.Req.Mensagem}}{{else}}Não informado{{end}}</div></div>
        {{with .Req.OutrosDocumentos}}<div class="field"><div class="label">Outros Documentos:</div><div class="value">{{.}}</div></div>{{end}}
    </div>
    <div class="footer">
        <p>Esta solicitação foi enviada através do formulário de consultoria do site.</p>
        <p>Data: {{.Now}}</p>
        {{if .Lookup}}{{if .Lookup.Success}}<p><strong>✅ Dados do CNPJ verificados automaticamente</strong></p>{{end}}{{end}}
    </div>
</div>
</body>
</html>
`))

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #1e3c72, #2a5298); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .info-box { background: white; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #2a5298; }
    .label { font-weight: bold; color: #1e3c72; }
    .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>🚀 Nova Solicitação de Aporte</h1>
        <p>Recebemos uma nova solicitação através da landing page</p>
    </div>
    <div class="content">
        <div class="info-box">
            <h3>📋 Dados do Solicitante</h3>
            <p><span class="label">Nome:</span> {{.Req.Nome}}</p>
            <p><span class="label">E-mail:</span> {{.Req.Email}}</p>
            <p><span class="label">Telefone:</span> {{.Req.Telefone}}</p>
        </div>
        {{if .Req.Empresa}}
        <div class="info-box">
            <h3>🏢 Dados da Empresa</h3>
            <p><span class="label">Empresa:</span> {{.Req.Empresa}}</p>
            {{with .Req.CNPJ}}<p><span class="label">CNPJ:</span> {{.}}</p>{{end}}
        </div>
        {{end}}
        {{if .Lookup}}{{if .Lookup.Success}}
        <div class="info-box">
            <h3>📊 Dados Oficiais do CNPJ</h3>
            <p><span class="label">Razão Social:</span> {{.Lookup.Company.LegalName}}</p>
            <p><span class="label">Situação:</span> {{.Lookup.Company.Status}}</p>
            <p><span class="label">Fonte:</span> {{.Lookup.Source}} {{if .Lookup.Official}}(Oficial){{else}}(Terceiros){{end}}</p>
        </div>
        {{else}}
        <div class="info-box">
            <h3>⚠️ Consulta CNPJ</h3>
            <p><span class="label">Erro na consulta:</span> {{.Lookup.Message}}</p>
        </div>
        {{end}}{{end}}
        <div class="info-box">
            <h3>💰 Informações do Aporte</h3>
            <p><span class="label">Valor Solicitado:</span> R$ {{if .Req.ValorAporte}}{{.Req.ValorAporte}}{{else}}Não informado{{end}}</p>
            {{with .Req.Descricao}}<p><span class="label">Descrição:</span> {{.}}</p>{{end}}
        </div>
        <div class="footer">
            <p>📧 E-mail enviado automaticamente pela Landing Page</p>
            <p>🕒 {{.Now}}</p>
        </div>
    </div>
</div>
</body>
</html>
`))

const ptTimeLayout = "02/01/2006 15:04:05"

// RenderConsultationEmail builds the HTML body for a consultancy submission.
// lookup may be nil when no identifier was supplied.
func RenderConsultationEmail(req models.ConsultationRequest, lookup *models.LookupResult) (string, error) {
	data := struct {
		Req         models.ConsultationRequest
		Lookup      *models.LookupResult
		ConsultedAt string
		Now         string
	}{
		Req:    req,
		Lookup: lookup,
		Now:    time.Now().Format(ptTimeLayout),
	}
	if lookup != nil {
		data.ConsultedAt = lookup.ConsultedAt.Format(ptTimeLayout)
	}

	var buf bytes.Buffer
	if err := consultationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render consultation email: %w", err)
	}
	return buf.String(), nil
}

// RenderContactEmail builds the HTML body for the attachment-free contact form.
func RenderContactEmail(req models.ContactRequest, lookup *models.LookupResult) (string, error) {
	data := struct {
		Req    models.ContactRequest
		Lookup *models.LookupResult
		Now    string
	}{
		Req:    req,
		Lookup: lookup,
		Now:    time.Now().Format(ptTimeLayout),
	}

	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return buf.String(), nil
}
