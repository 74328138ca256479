package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aporte-capital/consultoria-service/internal/mailer"
	"github.com/aporte-capital/consultoria-service/internal/models"
	"github.com/aporte-capital/consultoria-service/internal/whatsapp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxUploadFiles = 5
	maxFileSize    = 10 << 20 // 10MB per file
	uploadField    = "documentos"
)

// SubmitConsultation processes the consultancy form: validate, enrich via the
// registry lookup, email the recipient, and hand back WhatsApp deep links
// plus a temporary download link when attachments were sent.
func (h *Handler) SubmitConsultation(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Erro ao processar o formulário: " + err.Error(),
		})
		return
	}

	files := form.File[uploadField]
	if msg := checkUploadLimits(files); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var req models.ConsultationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Formato de requisição inválido",
		})
		return
	}

	// Validation failures never reach the lookup, the mailer or storage.
	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Dados inválidos",
			"errors":  errs,
		})
		return
	}

	h.logger.Info().Str("empresa", req.Empresa).Int("files", len(files)).Msg("consultation request received")

	// Registry enrichment is best effort: a failed lookup is reported inside
	// the email, never to the requester.
	var lookup *models.LookupResult
	if req.CNPJ != "" {
		result := h.lookup.Lookup(req.CNPJ)
		lookup = &result
	}

	stored, errMsg := h.storeUploads(c, files)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errMsg})
		return
	}

	if err := h.sendConsultationMail(req, lookup, stored); err != nil {
		h.logger.Error().Err(err).Msg("failed to send notification email")
		h.deleteStored(stored)
		h.internalError(c, err)
		return
	}

	var downloadURL string
	if len(stored) > 0 {
		linkID := h.links.Create(stored, h.cfg.Links.MaxDownloads, h.cfg.Links.Lifetime)
		downloadURL = fmt.Sprintf("%s/download/%s", h.cfg.BaseURL(), linkID)
	}

	h.events.Publish("consultoria.received", gin.H{
		"empresa":  req.Empresa,
		"cnpj":     req.CNPJ,
		"arquivos": len(stored),
		"enriched": lookup != nil && lookup.Success,
	})

	clientURL := whatsapp.DeepLink(h.cfg.WhatsApp.Number, whatsapp.ClientMessage(req, len(stored)))
	teamURL := whatsapp.DeepLink(h.cfg.WhatsApp.Number, whatsapp.TeamMessage(req, downloadURL, len(stored)))

	var downloadLink any
	if downloadURL != "" {
		downloadLink = downloadURL
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"message":               "Solicitação enviada com sucesso! Entraremos em contato em breve.",
		"whatsappURL":           clientURL,
		"whatsappURLForCompany": teamURL,
		"downloadLink":          downloadLink,
		"hasFiles":              len(stored) > 0,
	})
}

// SendContactEmail is the attachment-free sibling of the consultancy form:
// same enrichment and email flow, JSON body, no files and no download link.
func (h *Handler) SendContactEmail(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Formato de requisição inválido",
		})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Nome, email e telefone são obrigatórios",
			"errors":  errs,
		})
		return
	}

	var lookup *models.LookupResult
	if req.CNPJ != "" {
		result := h.lookup.Lookup(req.CNPJ)
		lookup = &result
	}

	html, err := mailer.RenderContactEmail(req, lookup)
	if err != nil {
		h.internalError(c, err)
		return
	}

	subjectName := req.Empresa
	if subjectName == "" {
		subjectName = req.Nome
	}
	msg := mailer.Message{
		Subject: "🚀 Nova Solicitação de Aporte - " + subjectName,
		HTML:    html,
	}
	if err := h.mail.Send(msg); err != nil {
		h.logger.Error().Err(err).Msg("failed to send contact email")
		h.internalError(c, err)
		return
	}

	h.events.Publish("consultoria.contato", gin.H{"nome": req.Nome, "cnpj": req.CNPJ})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "E-mail enviado com sucesso!",
	})
}

// checkUploadLimits enforces the count, size and content-type caps before any
// other work happens. Returns an empty string when all files pass.
func checkUploadLimits(files []*multipart.FileHeader) string {
	if len(files) > maxUploadFiles {
		return fmt.Sprintf("Muitos arquivos. Máximo: %d arquivos", maxUploadFiles)
	}
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return "Arquivo muito grande. Tamanho máximo: 10MB"
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType != "application/pdf" && !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			return "Apenas arquivos PDF são permitidos"
		}
	}
	return ""
}

// storeUploads scans (when enabled) and persists each attachment under a
// fresh object name. On any failure everything stored so far is removed.
func (h *Handler) storeUploads(c *gin.Context, files []*multipart.FileHeader) ([]models.StoredFile, string) {
	stored := make([]models.StoredFile, 0, len(files))

	for _, fh := range files {
		if h.scanner != nil {
			src, err := fh.Open()
			if err != nil {
				h.deleteStored(stored)
				return nil, "Erro ao processar o arquivo: " + fh.Filename
			}
			scanErr := h.scanner.Scan(src)
			src.Close()
			if scanErr != nil {
				h.deleteStored(stored)
				return nil, "Arquivo rejeitado pela verificação de segurança: " + fh.Filename
			}
		}

		src, err := fh.Open()
		if err != nil {
			h.deleteStored(stored)
			return nil, "Erro ao processar o arquivo: " + fh.Filename
		}
		objectName := uuid.New().String() + ".pdf"
		err = h.blobs.Save(c.Request.Context(), objectName, src, fh.Size, "application/pdf")
		src.Close()
		if err != nil {
			h.logger.Error().Str("file", fh.Filename).Err(err).Msg("failed to store upload")
			h.deleteStored(stored)
			return nil, "Erro ao armazenar o arquivo: " + fh.Filename
		}

		stored = append(stored, models.StoredFile{
			OriginalName: fh.Filename,
			ObjectName:   objectName,
			Size:         fh.Size,
		})
	}

	return stored, ""
}

func (h *Handler) sendConsultationMail(req models.ConsultationRequest, lookup *models.LookupResult, stored []models.StoredFile) error {
	html, err := mailer.RenderConsultationEmail(req, lookup)
	if err != nil {
		return err
	}

	subject := "Nova Solicitação de Consultoria - " + req.Empresa
	if lookup != nil && lookup.Success {
		subject += " - " + lookup.Company.Status
	}

	attachments := make([]mailer.Attachment, 0, len(stored))
	for _, f := range stored {
		objectName := f.ObjectName
		attachments = append(attachments, mailer.Attachment{
			Filename:    f.OriginalName,
			ContentType: "application/pdf",
			Open: func() (io.ReadCloser, error) {
				rc, _, err := h.blobs.Open(context.Background(), objectName)
				return rc, err
			},
		})
	}

	return h.mail.Send(mailer.Message{Subject: subject, HTML: html, Attachments: attachments})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"message": "Erro interno do servidor. Tente novamente mais tarde.",
	}
	if h.cfg.Development() {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
