package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const resetSubject = "Your RecruitmentBuddy password reset code"

// resetMail es el correo con el codigo de reseteo de contraseña.
type resetMail struct {
	fromAddr  string
	fromName  string
	to        string
	code      string
	expiresAt time.Time
	sentAt    time.Time
}

func (m resetMail) body() string {
	minutes := int(m.expiresAt.Sub(m.sentAt).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	var b strings.Builder
	b.WriteString("Hi,\r\n\r\n")
	b.WriteString("We received a request to reset the password of your RecruitmentBuddy account.\r\n\r\n")
	fmt.Fprintf(&b, "    Reset code: %s\r\n\r\n", m.code)
	fmt.Fprintf(&b, "The code is valid for %d minutes (until %s UTC).\r\n", minutes, m.expiresAt.UTC().Format("2006-01-02 15:04"))
	b.WriteString("Enter it on the reset password page together with your new password.\r\n\r\n")
	b.WriteString("If you did not ask for a reset, you can ignore this email. Your password stays the same.\r\n")
	return b.String()
}

// render arma el mensaje RFC 5322 completo.
func (m resetMail) render() []byte {
	from := headerValue(m.fromAddr)
	if name := headerValue(m.fromName); name != "" {
		from = fmt.Sprintf("%q <%s>", name, from)
	}

	headers := []string{
		"From: " + from,
		"To: " + headerValue(m.to),
		"Subject: " + resetSubject,
		"Date: " + m.sentAt.Format(time.RFC1123Z),
		"Message-ID: " + messageID(m.fromAddr),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"Content-Transfer-Encoding: 8bit",
		"Auto-Submitted: auto-generated",
		"X-Auto-Response-Suppress: All",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + m.body())
}

// headerValue descarta saltos de linea para que un valor no agregue headers.
func headerValue(v string) string {
	v = strings.NewReplacer("\r", "", "\n", "").Replace(v)
	return strings.TrimSpace(v)
}

func messageID(fromAddr string) string {
	domain := "recruitment-buddy.local"
	if _, host, ok := strings.Cut(headerValue(fromAddr), "@"); ok && host != "" {
		domain = host
	}
	return fmt.Sprintf("<reset.%s@%s>", uuid.NewString(), domain)
}
