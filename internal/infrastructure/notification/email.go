package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailNotifier 通過 SMTP (STARTTLS) 發送消息
type EmailNotifier struct {
	host     string
	port     int
	user     string
	password string
	to       string
}

// NewEmailNotifier 創建郵件通知器
func NewEmailNotifier(host string, port int, user, password, to string) *EmailNotifier {
	return &EmailNotifier{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		to:       to,
	}
}

func (e *EmailNotifier) Name() string {
	return "email"
}

func (e *EmailNotifier) Send(ctx context.Context, message string) error {
	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.user, e.password, e.host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.user)
	fmt.Fprintf(&b, "To: %s\r\n", e.to)
	b.WriteString("Subject: Trading Bot Alert\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message)

	// net/smtp 不支持 context 取消；呼叫方的超時由 SMTP 連接本身承擔
	if err := smtp.SendMail(addr, auth, e.user, []string{e.to}, []byte(b.String())); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
