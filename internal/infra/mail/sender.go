package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-ingestion/internal/entity"
)

// EmailSender avisa o time comercial quando um lead novo entra. Falha de SMTP
// nunca bloqueia a ingestão; quem chama só loga.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmailSender(host string, port int, user, pass, from, to string) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

func (s *EmailSender) NotifyLeadCreated(lead *entity.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s (%s)", lead.Email, lead.Source))
	m.SetBody("text/plain", fmt.Sprintf(
		"Lead %d ingerido.\n\nTenant: %s\nEmail: %s\nNome: %s %s\nTelefone: %s\nEmpresa: %s\nOrigem: %s\n",
		lead.ID, lead.TenantID, lead.Email, lead.FirstName, lead.LastName,
		lead.Phone, lead.Company, lead.Source,
	))

	return s.dialer.DialAndSend(m)
}
