package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/fai-quant/overnight-signal/src/models"
)

const deliveryTimeout = 10 * time.Second

type ChannelKind string

const (
	ChannelKindChat  ChannelKind = "chat"
	ChannelKindEmail ChannelKind = "email"
)

type Message struct {
	Subject string
	Body    string
}

// Channel delivers a formatted signal over one transport. Send makes at most
// one delivery attempt; the scheduler's next tick is the retry mechanism.
type Channel interface {
	Name() string
	Format(signal models.Signal) Message
	Send(ctx context.Context, signal models.Signal, creds models.CredentialSet) models.NotificationResult
}

func New(kind ChannelKind) (Channel, error) {
	switch kind {
	case ChannelKindChat:
		return NewTelegramChannel(), nil
	case ChannelKindEmail:
		return NewEmailChannel(), nil
	default:
		return nil, fmt.Errorf("notification.New: unknown channel kind: %s", kind)
	}
}
