package event

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/contact"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
)

// ContactInboxNotifier logs newly stored contact messages for the support inbox
type ContactInboxNotifier struct {
	logger *zap.Logger
}

// NewContactInboxNotifier creates the notifier
func NewContactInboxNotifier(l *zap.Logger) *ContactInboxNotifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &ContactInboxNotifier{logger: l}
}

// EventTypes returns the contact event types
func (n *ContactInboxNotifier) EventTypes() []string {
	return []string{contact.EventTypeMessageReceived}
}

// Handle logs the message with the sender address masked
func (n *ContactInboxNotifier) Handle(ctx context.Context, ev shared.DomainEvent) error {
	msg, ok := ev.(*contact.MessageReceived)
	if !ok {
		return nil
	}
	logger.WithLogger(ctx, n.logger).Info("Contact message received",
		zap.String("message_id", msg.SubjectID()),
		zap.String("from", MaskEmail(msg.Email)),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// MaskEmail keeps the first character of the local part and the domain
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

var _ shared.EventHandler = (*ContactInboxNotifier)(nil)
