package mailer

import "gopkg.in/gomail.v2"

// Mailer notifies a configured address when a new donation arrives.
type Mailer interface {
	SendItemReceivedEmail(toEmail, itemName string) error
}

type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

func (s *SMTPMailer) SendItemReceivedEmail(toEmail, itemName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New Donation Received")
	m.SetBody("text/plain", "A new item '"+itemName+"' has been added to the catalog.")

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	return d.DialAndSend(m)
}
