package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	Domain string
	From   string
}

func (m *Mailgun) Init() {
	m.Domain = os.Getenv("MG_DOMAIN")
	apiKey := os.Getenv("MG_PUBLIC_API_KEY")
	m.From = os.Getenv("EMAIL_FROM")
	if m.Domain == "" || apiKey == "" {
		log.Println("mailgun not configured; outgoing mail disabled")
		return
	}
	m.Client = mailgun.NewMailgun(m.Domain, apiKey)
}

// SendRedemptionMail confirms a redemption to the user. Mail is
// best-effort; the redemption has already committed when this runs.
func (m *Mailgun) SendRedemptionMail(ctx context.Context, to, rewardName string, pointsSpent int) error {
	if m.Client == nil {
		return nil
	}
	subject := "Your EcoSnap reward redemption"
	body := fmt.Sprintf("You redeemed %q for %d points. Our team will reach out about delivery.", rewardName, pointsSpent)
	message := m.Client.NewMessage(m.From, subject, body, to)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.Client.Send(ctx, message)
	return err
}
