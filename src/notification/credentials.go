package notification

import (
	"fmt"
	"sort"

	"github.com/fai-quant/overnight-signal/src/models"
)

// requiredSecrets maps each channel kind to the environment variables that
// must be non-empty before any network call is attempted.
var requiredSecrets = map[ChannelKind]map[string]func(models.CredentialSet) string{
	ChannelKindChat: {
		"TELEGRAM_BOT_TOKEN": func(c models.CredentialSet) string { return c.BotToken },
		"TELEGRAM_CHAT_ID":   func(c models.CredentialSet) string { return c.ChatID },
	},
	ChannelKindEmail: {
		"SMTP_HOST": func(c models.CredentialSet) string { return c.SMTPHost },
		"SMTP_USER": func(c models.CredentialSet) string { return c.SMTPUser },
		"SMTP_PASS": func(c models.CredentialSet) string { return c.SMTPPass },
	},
}

// ValidateCredentials fails fast on configuration errors, before any data
// fetch or delivery is attempted. It performs no network I/O.
func ValidateCredentials(creds models.CredentialSet, kind ChannelKind) error {
	required, ok := requiredSecrets[kind]
	if !ok {
		return fmt.Errorf("ValidateCredentials: unknown channel kind: %s", kind)
	}

	var missing []string
	for name, field := range required {
		if field(creds) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return &models.MissingSecretsError{Fields: missing}
	}

	return nil
}
