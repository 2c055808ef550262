package models

// CredentialSet holds the delivery secrets read from the environment at
// process start. It is treated as read-only input for the whole run.
type CredentialSet struct {
	BotToken string
	ChatID   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	EmailTo  string
	FromName string
}

// NotificationResult records the outcome of a single delivery attempt. It is
// transient, used only for logging and the exit-code decision.
type NotificationResult struct {
	Delivered bool
	Channel   string
	Err       error
}
