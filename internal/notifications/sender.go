package notifications

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// Alert describes a change made through the API, mirroring the alert headers.
type Alert struct {
	Entity string
	Action string
	ID     int64
}

const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

func (a Alert) Message() string {
	if a.Action == Created {
		return fmt.Sprintf("A new %s is created with identifier %d", a.Entity, a.ID)
	}
	return fmt.Sprintf("A %s is %s with identifier %d", a.Entity, a.Action, a.ID)
}

type Sender struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

func NewSender(client *sendgrid.Client, from, to string) *Sender {
	return &Sender{
		client: client,
		from:   mail.NewEmail("Bank Admin", from),
		to:     mail.NewEmail("Operations", to),
	}
}

func (s *Sender) SendEntityAlert(alert Alert) error {
	subject := fmt.Sprintf("[bank-admin] %s %s", alert.Entity, alert.Action)
	plainTextContent := alert.Message()
	htmlContent := "<p>" + alert.Message() + "</p>"
	message := mail.NewSingleEmail(s.from, subject, s.to, plainTextContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode != 202 {
		log.Errorf("failure sending entity alert with sendgrid: %v", response.Body)
	}

	return nil
}
