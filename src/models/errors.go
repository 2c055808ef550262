package models

import (
	"fmt"
	"strings"
)

var DataUnavailableErr = fmt.Errorf("market data unavailable")
var InvalidPriceDataErr = fmt.Errorf("invalid price data")

// MissingSecretsError is fatal: it surfaces before any network I/O and lists
// the exact environment variables the operator must set.
type MissingSecretsError struct {
	Fields []string
}

func (e *MissingSecretsError) Error() string {
	return fmt.Sprintf("missing required secrets: %s", strings.Join(e.Fields, ", "))
}

// DeliveryError reports a failed notification attempt. The run still
// completes; the process exit code surfaces the failure to the scheduler.
type DeliveryError struct {
	Channel string
	Detail  string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delivery failed on %s channel: %s: %v", e.Channel, e.Detail, e.Err)
	}

	return fmt.Sprintf("delivery failed on %s channel: %s", e.Channel, e.Detail)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
