package notify

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

const otpSubject = "Your verification code"

func newOtpMessage(from, to, code string, ttl time.Duration) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", otpSubject)

	body := fmt.Sprintf(`
		<h3>Verification code</h3>
		<p>Use the following code to continue: <strong>%s</strong></p>
		<p>The code expires in %d minutes.</p>
		<p>If you did not request it, you can ignore this email.</p>
	`, code, int(ttl.Minutes()))

	m.SetBody("text/html", body)
	return m
}
