package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"followerwatch/internal/config"
	"followerwatch/internal/logger"
)

type Email struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
}

func NewEmail(cfg config.Email) *Email {
	return &Email{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		From:     cfg.From,
		Password: cfg.Password,
		To:       cfg.To,
	}
}

// Deliver opens an SMTP session, upgrades it with STARTTLS, authenticates
// and sends one message. Errors distinguish the connect, auth and send
// phases; all of them are non-fatal to the agent.
func (e *Email) Deliver(ctx context.Context, ev Event) error {
	addr := net.JoinHostPort(e.Host, strconv.Itoa(e.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp connect %s: %w", addr, err)
	}
	c, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp connect %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: e.Host}); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}
	auth := smtp.PlainAuth("", e.From, e.Password, e.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := c.Mail(e.From); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	if err := c.Rcpt(e.To); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	if _, err := w.Write(e.message(ev)); err != nil {
		w.Close()
		return fmt.Errorf("smtp send: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	logger.Infof("email notification sent for %d new follower(s)", ev.Count)
	return nil
}

func (e *Email) Check() error {
	if e.Host == "" {
		return fmt.Errorf("smtp server is empty")
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("smtp port out of range: %d", e.Port)
	}
	if _, err := mail.ParseAddress(e.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if _, err := mail.ParseAddress(e.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	return nil
}

func (e *Email) message(ev Event) []byte {
	var b strings.Builder
	b.WriteString("From: " + e.From + "\r\n")
	b.WriteString("To: " + e.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject(ev.Count)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body(ev))
	return []byte(b.String())
}

func subject(count int) string {
	if count == 1 {
		return "🎉 New GitHub Follower!"
	}
	return "🎉 New GitHub Followers!"
}

func body(ev Event) string {
	var b strings.Builder
	b.WriteString("Hi there!\r\n\r\n")
	if ev.Count == 1 {
		login := ev.NewFollowers[0]
		b.WriteString("You have a new follower on GitHub! 🎉\r\n\r\n")
		b.WriteString("👤 " + login + "\r\n")
		b.WriteString("🔗 https://github.com/" + login + "\r\n")
	} else {
		fmt.Fprintf(&b, "You have %d new followers on GitHub! 🎉\r\n\r\n", ev.Count)
		for _, login := range ev.NewFollowers {
			b.WriteString("👤 " + login + " - https://github.com/" + login + "\r\n")
		}
	}
	b.WriteString("\r\nKeep up the great work!\r\n\r\n---\r\nfollowerwatch\r\n")
	return b.String()
}
