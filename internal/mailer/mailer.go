package mailer

import (
	"io"

	"github.com/aporte-capital/consultoria-service/internal/configuration"
	"gopkg.in/gomail.v2"
)

// Attachment is one file to attach; Open is called at send time so content
// can stream straight out of blob storage.
type Attachment struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type Message struct {
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender dispatches notification emails to the configured recipient.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends through a plain SMTP transport.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSMTPSender(cfg configuration.SMTPConfig, recipient string) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Secure
	return &SMTPSender{dialer: d, from: cfg.User, to: recipient}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, "Formulário de Consultoria")
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				rc, err := att.Open()
				if err != nil {
					return err
				}
				defer rc.Close()
				_, err = io.Copy(w, rc)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.Attach(att.Filename, settings...)
	}

	return s.dialer.DialAndSend(m)
}
