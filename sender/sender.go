package sender

import (
	"context"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender abstracts the outbound mail transport so the restock flow
// can be exercised without SMTP.
type EmailSender interface {
	SendEmail(ctx context.Context, from, to, subject, body string) (SendResult, error)
}
