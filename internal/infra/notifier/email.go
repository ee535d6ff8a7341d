package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"
)

type EmailSender struct {
	host      string
	port      string
	username  string
	password  string
	from      string
	tlsConfig *tls.Config
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		from:      cfg.From,
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
	}
}

func (s *EmailSender) Send(ctx context.Context, msg shared.Message) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		return errs.Wrap(err, "failed to dial smtp server")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "failed to open smtp session")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(s.tlsConfig.Clone()); err != nil {
			return errs.Wrap(err, "failed to start tls")
		}
	}
	if s.username != "" {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return errs.Wrap(err, "smtp auth failed")
		}
	}

	if err := client.Mail(s.from); err != nil {
		return errs.Wrap(err, "smtp MAIL failed")
	}
	if err := client.Rcpt(msg.Recipient); err != nil {
		return errs.Wrap(err, "smtp RCPT failed")
	}
	w, err := client.Data()
	if err != nil {
		return errs.Wrap(err, "smtp DATA failed")
	}
	if _, err := w.Write(buildMail(s.from, msg, time.Now())); err != nil {
		_ = w.Close()
		return errs.Wrap(err, "failed to write mail body")
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "smtp server rejected message")
	}
	return client.Quit()
}

func buildMail(from string, msg shared.Message, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@facility-booking>\r\n", msg.AlertID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
