package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/studyhive/studyhive-backend/pkg/logger"
	"gopkg.in/gomail.v2"
)

// Client is the outgoing mail client. Sending is best-effort: failures
// are logged and swallowed so a mail outage never affects reconciliation.
type Client struct {
	dialer *gomail.Dialer
}

// NewClient initializes the Client.
func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendDeadlineExpired notifies a user by mail that one of their
// deadlines has passed.
func (c *Client) SendDeadlineExpired(to string, title string) {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	messageID := generateMessageID(domain)

	msg.SetHeader("Message-ID", messageID)
	msg.SetHeader("Date", time.Now().UTC().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Deadline expired: %s", title))
	msg.SetBody("text/plain", fmt.Sprintf("Your deadline %q has passed. Open the planner to review it.", title))
	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Error(err)
		return
	}

	logger.Log.Debugf("expiry mail sent to %s", to)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
