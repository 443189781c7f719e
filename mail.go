package peatrack

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// Email is a ready-to-send report: an HTML body with an optional inline PNG
// chart referenced by content id.
type Email struct {
	Subject  string
	HTML     string
	ChartPNG []byte
	ChartCID string
}

// NewChartCID returns a fresh content id for the inline chart.
func NewChartCID() string {
	return fmt.Sprintf("chart-%d@peatrack", time.Now().UnixNano())
}

// Send delivers the email through the configured relay using PLAIN auth and
// STARTTLS. It must be called after the ledger and history files have been
// persisted: a relay failure then only costs the notification, never the
// day's data.
func (m MailConfig) Send(e Email) error {
	if m.Host == "" || m.From == "" || m.To == "" {
		return fmt.Errorf("mail relay not configured (host/from/to)")
	}

	boundary := fmt.Sprintf("peatrack-%d", time.Now().UnixNano())

	var msg strings.Builder
	header := map[string]string{
		"From":         m.From,
		"To":           m.To,
		"Subject":      mime.QEncoding.Encode("utf-8", e.Subject),
		"MIME-Version": "1.0",
		"Content-Type": fmt.Sprintf("multipart/related; boundary=%q", boundary),
	}
	for k, v := range header {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	msg.WriteString(e.HTML)
	msg.WriteString("\r\n")

	if len(e.ChartPNG) > 0 {
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: image/png\r\n")
		msg.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&msg, "Content-ID: <%s>\r\n\r\n", e.ChartCID)
		msg.WriteString(wrap76(base64.StdEncoding.EncodeToString(e.ChartPNG)))
		msg.WriteString("\r\n")
	}
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	if err := smtp.SendMail(addr, auth, m.From, []string{m.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("cannot send report to %s via %s: %w", m.To, addr, err)
	}
	return nil
}

// wrap76 folds a base64 body to the 76-column limit of RFC 2045.
func wrap76(s string) string {
	var b strings.Builder
	for len(s) > 76 {
		b.WriteString(s[:76])
		b.WriteString("\r\n")
		s = s[76:]
	}
	b.WriteString(s)
	return b.String()
}
