package services

import "context"

// EmailSender is the Email Dispatcher collaborator: deliver one email to
// one recipient. Implementations live under external/.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, html string) error
}
