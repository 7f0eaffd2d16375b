// Package email delivers outbound mail, currently fee-reminder notices.
package email

import (
	"context"
	"time"
)

// SendRequest is one outbound message.
type SendRequest struct {
	To      []string
	From    string // empty means the sender's configured default
	Subject string
	HTML    string
}

// SendResult is the provider's acknowledgement of an accepted message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers messages through a mail provider. The fee rollover job
// batches its due notices through SendBatch; Send covers one-off mail.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
