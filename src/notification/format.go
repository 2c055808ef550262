package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/fai-quant/overnight-signal/src/models"
)

const disclaimer = "The signal is computed exclusively from data available at the close " +
	"of the last completed market session. It is advisory only and does not " +
	"constitute an order or investment advice."

// displayLocation is fixed: signal timestamps always render in the market's
// home timezone regardless of where the process runs.
var displayLocation = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}

// FormatSignal renders a signal into the notification template. It is a pure
// function: identical signals always yield byte-identical messages.
func FormatSignal(signal models.Signal) Message {
	subject := fmt.Sprintf("FAI QUANT SUPERIOR - Overnight %s", signal.Action)

	reference := "n/a"
	if signal.ReferencePrice != nil {
		reference = fmt.Sprintf("%.2f", *signal.ReferencePrice)
	}

	var b strings.Builder
	b.WriteString("FAI QUANT SUPERIOR - OVERNIGHT SIGNAL\n\n")
	fmt.Fprintf(&b, "Instrument:  %s\n", signal.Symbol)
	fmt.Fprintf(&b, "Generated:   %s\n", signal.GeneratedAt.In(displayLocation).Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Signal:      %s\n", signal.Action)
	fmt.Fprintf(&b, "Entry:       %s\n", signal.Entry)
	fmt.Fprintf(&b, "Reference:   %s\n", reference)
	fmt.Fprintf(&b, "Stop loss:   %+.1f\n", signal.StopLoss)
	fmt.Fprintf(&b, "Take profit: %+.1f\n", signal.TakeProfit)
	fmt.Fprintf(&b, "Risk:        %s\n", signal.Risk)
	fmt.Fprintf(&b, "Rule:        %s\n", signal.RuleTriggered)
	b.WriteString("\n")
	b.WriteString(disclaimer)
	b.WriteString("\n")

	return Message{
		Subject: subject,
		Body:    b.String(),
	}
}
