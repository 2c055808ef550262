package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fai-quant/overnight-signal/src/marketdata"
	"github.com/fai-quant/overnight-signal/src/models"
	"github.com/fai-quant/overnight-signal/src/notification"
	"github.com/fai-quant/overnight-signal/src/orchestrator"
	"github.com/fai-quant/overnight-signal/src/strategy"
	"github.com/fai-quant/overnight-signal/src/utils"
)

type RunArgs struct {
	GoEnv string
}

var runCmd = &cobra.Command{
	Use:   "overnight_signal",
	Short: "Compute the overnight signal for one instrument and dispatch a notification",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := Run(RunArgs{GoEnv: goEnv}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		log.Warnf("no env file loaded: %v", err)
	}

	apiKey := os.Getenv("POLYGON_API_KEY")
	if apiKey == "" {
		log.Fatalf("missing POLYGON_API_KEY environment variable")
	}

	kind := notification.ChannelKind(utils.GetEnvDefault("NOTIFY_CHANNEL", string(notification.ChannelKindEmail)))

	channel, err := notification.New(kind)
	if err != nil {
		return err
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}

	engine, symbol, err := buildEngine()
	if err != nil {
		return err
	}

	orch := orchestrator.New(orchestrator.Config{
		Symbol:  symbol,
		Fetcher: marketdata.NewPolygonFetcher(apiKey),
		Engine:  engine,
		Channel: channel,
		Kind:    kind,
		Creds:   creds,
		Policy: orchestrator.Policy{
			NotifyOnFlat: utils.GetEnvBool("NOTIFY_ON_FLAT"),
		},
	})

	outcome, err := orch.Run(context.Background(), time.Now())
	if err != nil {
		return err
	}

	// The rendered body doubles as the human-readable status line.
	fmt.Println(channel.Format(outcome.Signal).Body)

	log.WithFields(log.Fields{
		"final":    string(outcome.Final),
		"degraded": outcome.Degraded,
	}).Info("run complete")

	return nil
}

func loadCredentials() (models.CredentialSet, error) {
	smtpPort, err := utils.GetEnvInt("SMTP_PORT", 587)
	if err != nil {
		return models.CredentialSet{}, err
	}

	smtpUser := os.Getenv("SMTP_USER")

	return models.CredentialSet{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: smtpUser,
		SMTPPass: os.Getenv("SMTP_PASS"),
		EmailTo:  utils.GetEnvDefault("EMAIL_TO", smtpUser),
		FromName: utils.GetEnvDefault("EMAIL_FROM_NAME", "FAI-QUANT-SUPERIOR"),
	}, nil
}

func buildEngine() (*strategy.Engine, string, error) {
	symbol := utils.GetEnvDefault("SIGNAL_SYMBOL", "FTSEMIB.MI")

	start, err := strategy.ParseClockTime(utils.GetEnvDefault("ACTIVE_START", "09:00"))
	if err != nil {
		return nil, "", fmt.Errorf("buildEngine: invalid ACTIVE_START: %w", err)
	}

	end, err := strategy.ParseClockTime(utils.GetEnvDefault("ACTIVE_END", "17:30"))
	if err != nil {
		return nil, "", fmt.Errorf("buildEngine: invalid ACTIVE_END: %w", err)
	}

	location, err := time.LoadLocation(utils.GetEnvDefault("SIGNAL_TIMEZONE", "Europe/Rome"))
	if err != nil {
		return nil, "", fmt.Errorf("buildEngine: invalid SIGNAL_TIMEZONE: %w", err)
	}

	engine := strategy.NewEngine(strategy.Config{
		Symbol:   symbol,
		Window:   strategy.ActiveWindow{Start: start, End: end},
		Location: location,
	})

	return engine, symbol, nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	runCmd.Execute()
}
