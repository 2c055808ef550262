package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fai-quant/overnight-signal/src/models"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramChannel posts the signal to a chat through the bot API.
type TelegramChannel struct {
	baseURL string
	client  http.Client
}

func NewTelegramChannel() *TelegramChannel {
	return &TelegramChannel{
		baseURL: defaultTelegramBaseURL,
		client: http.Client{
			Timeout: deliveryTimeout,
		},
	}
}

func (c *TelegramChannel) Name() string {
	return "telegram"
}

func (c *TelegramChannel) Format(signal models.Signal) Message {
	return FormatSignal(signal)
}

func (c *TelegramChannel) Send(ctx context.Context, signal models.Signal, creds models.CredentialSet) models.NotificationResult {
	msg := c.Format(signal)

	if err := c.postJSON(ctx, creds, msg.Subject+"\n\n"+msg.Body); err != nil {
		return models.NotificationResult{Channel: c.Name(), Err: err}
	}

	log.WithFields(log.Fields{
		"signal_id": signal.ID,
		"chat_id":   creds.ChatID,
	}).Info("telegram message delivered")

	return models.NotificationResult{Delivered: true, Channel: c.Name()}
}

func (c *TelegramChannel) postJSON(ctx context.Context, creds models.CredentialSet, text string) error {
	body := map[string]interface{}{
		"chat_id": creds.ChatID,
		"text":    text,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("postJSON (Marshal): %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, creds.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("postJSON (NewRequest): %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, doErr := c.client.Do(req)
	if doErr != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "transport error", Err: doErr}
	}

	defer res.Body.Close()

	bodyBytes, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "failed to read response", Err: readErr}
	}

	if res.StatusCode >= 300 {
		return &models.DeliveryError{
			Channel: c.Name(),
			Detail:  fmt.Sprintf("sendMessage returned status %d: %s", res.StatusCode, string(bodyBytes)),
		}
	}

	return nil
}
