package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"time"
)

// buildMIME assembles a multipart/alternative message with plaintext and
// HTML bodies.
func buildMIME(data EmailData, htmlContent, textContent string, boundarySeed int64) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", data.FromName, data.From)
	fmt.Fprintf(&buf, "To: %s\r\n", data.To)
	if data.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", data.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", data.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	boundary := fmt.Sprintf("_MULTIPART_ALTERNATIVE_BOUNDARY_%d", boundarySeed)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain", textContent},
		{"text/html", htmlContent},
	} {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=utf-8\r\n", part.contentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		buf.WriteString(base64.StdEncoding.EncodeToString([]byte(part.body)))
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// sendWithSMTP sends an email using SMTP
func (s *Service) sendWithSMTP(data EmailData, htmlContent, textContent string) error {
	cfg := s.config.SMTP

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	msg := buildMIME(data, htmlContent, textContent, time.Now().UnixNano())
	if err := smtp.SendMail(addr, auth, data.From, []string{data.To}, msg); err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	return nil
}
