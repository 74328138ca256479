package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// Human-readable texts for the link validation reasons.
var reasonMessages = map[string]string{
	"not_found": "Link não encontrado",
	"inactive":  "Link desativado",
	"expired":   "Link expirado",
	"exhausted": "Limite de downloads atingido",
}

// DownloadPage renders the file listing for a valid link, or a styled error
// page carrying the validation reason.
func (h *Handler) DownloadPage(c *gin.Context) {
	linkID := c.Param("linkId")

	v := h.links.Validate(linkID)
	if !v.Valid {
		h.renderErrorPage(c, v.Reason)
		return
	}

	remaining := time.Until(v.Link.ExpiresAt)
	if remaining < 0 {
		remaining = 0
	}

	type fileView struct {
		Name   string
		SizeMB string
		URL    string
	}
	files := make([]fileView, 0, len(v.Link.Files))
	for _, f := range v.Link.Files {
		files = append(files, fileView{
			Name:   f.OriginalName,
			SizeMB: fmt.Sprintf("%.2f MB", float64(f.Size)/1024/1024),
			URL:    fmt.Sprintf("/download/%s/file/%s", linkID, url.PathEscape(f.OriginalName)),
		})
	}

	data := gin.H{
		"LinkID":           linkID,
		"CreatedAt":        v.Link.CreatedAt.Format("02/01/2006 15:04:05"),
		"HoursRemaining":   int(remaining.Hours()),
		"MinutesRemaining": int(remaining.Minutes()) % 60,
		"Downloads":        v.Link.Downloads,
		"MaxDownloads":     v.Link.MaxDownloads,
		"Files":            files,
		"ZipURL":           fmt.Sprintf("/download/%s/zip", linkID),
	}

	var buf bytes.Buffer
	if err := downloadPageTmpl.Execute(&buf, data); err != nil {
		h.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// DownloadFile streams one attachment and counts it against the budget.
func (h *Handler) DownloadFile(c *gin.Context) {
	linkID := c.Param("linkId")
	filename := c.Param("filename")

	v := h.links.Validate(linkID)
	if !v.Valid {
		c.JSON(http.StatusNotFound, gin.H{"error": reasonMessages[v.Reason], "reason": v.Reason})
		return
	}

	var objectName string
	var size int64
	for _, f := range v.Link.Files {
		if f.OriginalName == filename {
			objectName = f.ObjectName
			size = f.Size
			break
		}
	}
	if objectName == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Arquivo não encontrado"})
		return
	}

	rc, storedSize, err := h.blobs.Open(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Arquivo não existe no servidor"})
		return
	}
	defer rc.Close()
	if storedSize > 0 {
		size = storedSize
	}

	h.links.RecordDownload(linkID)

	extraHeaders := map[string]string{
		"Content-Description": "File Transfer",
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", rc, extraHeaders)
}

// DownloadArchive bundles every attachment of the link into a single ZIP
// stream, counted as one download.
func (h *Handler) DownloadArchive(c *gin.Context) {
	linkID := c.Param("linkId")

	v := h.links.Validate(linkID)
	if !v.Valid {
		c.JSON(http.StatusNotFound, gin.H{"error": reasonMessages[v.Reason], "reason": v.Reason})
		return
	}

	h.links.RecordDownload(linkID)

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "documentos_"+linkID+".zip"))
	c.Status(http.StatusOK)

	zw := zip.NewWriter(c.Writer)
	defer zw.Close()

	for _, f := range v.Link.Files {
		rc, _, err := h.blobs.Open(c.Request.Context(), f.ObjectName)
		if err != nil {
			h.logger.Warn().Str("object", f.ObjectName).Err(err).Msg("skipping missing file in archive")
			continue
		}
		w, err := zw.Create(f.OriginalName)
		if err != nil {
			rc.Close()
			h.logger.Error().Err(err).Msg("failed to append archive entry")
			return
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			h.logger.Error().Err(err).Msg("failed to stream archive entry")
			return
		}
		rc.Close()
	}
}

func (h *Handler) renderErrorPage(c *gin.Context, reason string) {
	var buf bytes.Buffer
	if err := errorPageTmpl.Execute(&buf, gin.H{"Reason": reasonMessages[reason]}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": reasonMessages[reason], "reason": reason})
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
}

var errorPageTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Link Inválido - Aporte Capital</title>
<style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; display: flex; align-items: center; justify-content: center; }
    .container { background: white; padding: 2rem; border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.2); text-align: center; max-width: 500px; }
    .error-icon { font-size: 4rem; margin-bottom: 1rem; }
    h1 { color: #2c3e50; margin-bottom: 1rem; }
    p { color: #7f8c8d; margin-bottom: 1.5rem; }
    .btn { background: #3498db; color: white; padding: 12px 24px; border: none; border-radius: 8px; text-decoration: none; display: inline-block; }
</style>
</head>
<body>
<div class="container">
    <div class="error-icon">🔒</div>
    <h1>Link Inválido</h1>
    <p><strong>Motivo:</strong> {{.Reason}}</p>
    <p>Este link pode ter expirado ou atingido o limite de downloads.</p>
    <a href="/" class="btn">Voltar ao Site</a>
</div>
</body>
</html>
`))

var downloadPageTmpl = template.Must(template.New("download").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Download Seguro - Aporte Capital</title>
<style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; padding: 20px; }
    .container { max-width: 800px; margin: 0 auto; background: white; border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.2); overflow: hidden; }
    .header { background: linear-gradient(135deg, #2c3e50, #3498db); color: white; padding: 2rem; text-align: center; }
    .content { padding: 2rem; }
    .info-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
    .info-card { background: #f8f9fa; padding: 1rem; border-radius: 8px; border-left: 4px solid #3498db; }
    .info-card h3 { color: #2c3e50; margin-bottom: 0.5rem; font-size: 0.9rem; text-transform: uppercase; }
    .info-card p { color: #7f8c8d; font-weight: bold; }
    .file-list { background: #f8f9fa; border-radius: 8px; overflow: hidden; }
    .file-item { display: flex; align-items: center; justify-content: space-between; padding: 1rem; border-bottom: 1px solid #e9ecef; }
    .file-item:last-child { border-bottom: none; }
    .download-btn { background: #27ae60; color: white; padding: 8px 16px; border-radius: 6px; text-decoration: none; font-size: 0.9rem; }
    .download-all { text-align: center; margin-top: 1.5rem; }
    .download-all .btn { background: #3498db; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-size: 1rem; }
    .warning { background: #fff3cd; border: 1px solid #ffeaa7; color: #856404; padding: 1rem; border-radius: 8px; margin-top: 1rem; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>🔒 Download Seguro</h1>
        <p>Aporte Capital - Documentos Temporários</p>
    </div>
    <div class="content">
        <div class="info-grid">
            <div class="info-card"><h3>📋 Código da Solicitação</h3><p>#{{.LinkID}}</p></div>
            <div class="info-card"><h3>📅 Criado em</h3><p>{{.CreatedAt}}</p></div>
            <div class="info-card"><h3>⏰ Expira em</h3><p>{{.HoursRemaining}}h {{.MinutesRemaining}}min</p></div>
            <div class="info-card"><h3>🔢 Downloads</h3><p>{{.Downloads}}/{{.MaxDownloads}}</p></div>
        </div>
        <h2>📁 Documentos Disponíveis</h2>
        <div class="file-list">
            {{range .Files}}
            <div class="file-item">
                <div><h4>📄 {{.Name}}</h4><p>{{.SizeMB}}</p></div>
                <a href="{{.URL}}" class="download-btn">📥 Baixar</a>
            </div>
            {{end}}
        </div>
        <div class="download-all">
            <a href="{{.ZipURL}}" class="btn">📦 Baixar Todos (ZIP)</a>
        </div>
        <div class="warning">
            <strong>⚠️ Importante:</strong>
            Este link é temporário e expirará automaticamente. Faça o download dos arquivos necessários antes do prazo limite.
            Após {{.MaxDownloads}} downloads, o link será desativado por segurança.
        </div>
    </div>
</div>
</body>
</html>
`))
