// Package whatsapp builds the prefilled wa.me deep links handed back to the
// frontend after a submission: one message for the client, one for the team.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aporte-capital/consultoria-service/internal/models"
)

// ClientMessage is the confirmation text shown to the requester; it never
// carries the download link.
func ClientMessage(req models.ConsultationRequest, fileCount int) string {
	documentos := "📄 *DOCUMENTOS:* Nenhum documento anexado"
	if fileCount > 0 {
		documentos = fmt.Sprintf(`📋 *DOCUMENTOS ENVIADOS:*
✅ %d arquivo(s) enviado(s) por EMAIL
✅ Solicitação enviada com sucesso!

📧 Aguarde retorno da Aporte Capital
🕐 Resposta em até 24 horas úteis`, fileCount)
	}

	return fmt.Sprintf(`🏢 *APORTE CAPITAL - Solicitação Enviada*

✅ *SUA SOLICITAÇÃO FOI ENVIADA COM SUCESSO!*

👤 *DADOS CONFIRMADOS:*
• Nome: %s
• Email: %s
• Telefone: %s

🏭 *EMPRESA:*
• Razão Social: %s
• CNPJ: %s
• Faturamento: %s
• Tempo: %s

💼 *CONSULTORIA SOLICITADA:*
• Tipo: %s
• Descrição: %s

%s

🎯 *PRÓXIMOS PASSOS:*
• Nossa equipe analisará sua solicitação
• Entraremos em contato em breve
• Mantenha seu WhatsApp ativo

Obrigado por escolher a Aporte Capital! 🚀`,
		req.NomeCompleto, req.Email, req.Telefone,
		req.Empresa, req.CNPJ, req.FaturamentoAnual, req.TempoExistencia,
		req.TipoConsultoria, req.Mensagem, documentos)
}

// TeamMessage is the internal notification text; downloadURL is empty when
// the submission carried no attachments.
func TeamMessage(req models.ConsultationRequest, downloadURL string, fileCount int) string {
	documentos := "📄 *DOCUMENTOS:* Nenhum documento anexado"
	if fileCount > 0 && downloadURL != "" {
		documentos = fmt.Sprintf(`📋 *DOCUMENTOS ENVIADOS:*
✅ %d arquivo(s) enviado(s) por EMAIL
✅ Disponíveis para download em:
🔗 %s

⏰ Link válido por 48 horas
🔒 Acesso seguro e criptografado
🔢 Máximo 5 downloads

📧 Verifique também seu email para detalhes completos!`, fileCount, downloadURL)
	}

	return fmt.Sprintf(`🏢 *APORTE CAPITAL - NOVA SOLICITAÇÃO*

🚨 *ATENÇÃO EQUIPE:* Nova solicitação recebida!

👤 *DADOS DO SOLICITANTE:*
• Nome: %s
• Email: %s
• Telefone: %s

🏭 *INFORMAÇÕES DA EMPRESA:*
• Razão Social: %s
• CNPJ: %s
• Faturamento Anual: %s
• Tempo de Existência: %s

💼 *TIPO DE CONSULTORIA:*
• Serviço: %s
• Descrição: %s

%s

⚡ *AÇÃO NECESSÁRIA:*
• Analisar solicitação
• Baixar documentos (se houver)
• Entrar em contato em até 24h

---
*Mensagem automática - Aporte Capital*`,
		req.NomeCompleto, req.Email, req.Telefone,
		req.Empresa, req.CNPJ, req.FaturamentoAnual, req.TempoExistencia,
		req.TipoConsultoria, req.Mensagem, documentos)
}

// DeepLink builds a wa.me URL with the message prefilled. The phone number
// is stripped to digits and gets the Brazilian country code when missing.
func DeepLink(phoneNumber, message string) string {
	phone := onlyDigits(phoneNumber)
	if !strings.HasPrefix(phone, "55") {
		phone = "55" + phone
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
