// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail dispatches outbound email.

Two implementations of [Sender] exist:

  - SMTPSender: delivers through an SMTP relay (STARTTLS + PLAIN auth when credentials are set).
  - LogSender: writes the message to the structured log, for local development.

Delivery is synchronous and never retried. A failure is returned to the
caller, which aborts the request.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message.
type Sender interface {
	Send(context context.Context, message Message) error
}

// # SMTP

// SMTPConfig holds the relay coordinates.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender for the given relay.
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config, send: smtp.SendMail}
}

// Send implements [Sender].
//
// net/smtp has no context support, so cancellation is only checked before dialing.
func (sender *SMTPSender) Send(context context.Context, message Message) error {
	if err := context.Err(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	var auth smtp.Auth
	if sender.config.Username != "" {
		auth = smtp.PlainAuth("", sender.config.Username, sender.config.Password, sender.config.Host)
	}

	addr := net.JoinHostPort(sender.config.Host, strconv.Itoa(sender.config.Port))
	payload := Compose(sender.config.From, message, time.Now())

	if err := sender.send(addr, auth, sender.config.From, []string{message.To}, payload); err != nil {
		return fmt.Errorf("mail: smtp send to %s failed: %w", addr, err)
	}
	return nil
}

// Compose renders message as an RFC 5322 document.
func Compose(from string, message Message, date time.Time) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	builder.WriteString("\r\n")
	return []byte(builder.String())
}

// # Development

// LogSender writes every message to the request logger instead of sending it.
type LogSender struct {
	from string
}

// NewLogSender creates a LogSender that reports from as the sender.
func NewLogSender(from string) *LogSender {
	return &LogSender{from: from}
}

// Send implements [Sender].
func (sender *LogSender) Send(context context.Context, message Message) error {
	ctxutil.GetLogger(context).InfoContext(context, "mail_logged",
		slog.String("from", sender.from),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
