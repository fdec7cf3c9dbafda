package main

import (
	"context"
	"github.com/saylorsolutions/httpnotifier/cli"
	"github.com/saylorsolutions/httpnotifier/client"
	"github.com/saylorsolutions/httpnotifier/config"
	"github.com/saylorsolutions/httpnotifier/notification"
	flag "github.com/spf13/pflag"
)

func addSendCommand(set *cli.CommandSet) {
	cmd := set.AddCommand("send", "Sends a notification to a running endpoint").
		Usage("send [FLAGS...]")
	fs := cmd.Flags()
	addConfigFlag(fs)
	fs.StringP("url", "u", "", "Base URL of the endpoint (default \"http://localhost:5020\")")
	fs.String("id", "", "API key sent as the notification ID")
	fs.StringP("title", "t", "Basement Alarm Notification", "Notification title")
	fs.StringP("message", "m", "Basement door is OPEN!", "Notification message")
	fs.String("type", notification.AlarmUnsecuredType, "Notification type")
	fs.Int("max-tries", 0, "Attempts before giving up (default 3)")
	cmd.Does(send)
}

func bindSendFlags(cfg *config.Config) map[string]any {
	return map[string]any{
		"url":       &cfg.Client.URL,
		"id":        &cfg.Client.APIKey,
		"max-tries": &cfg.Client.MaxTries,
	}
}

func send(ctx context.Context, fs *flag.FlagSet, printer *cli.Printer) error {
	if fs.NArg() > 0 {
		return cli.NewUsageError("unexpected arguments: %v", fs.Args())
	}
	cfg, err := loadConfig(fs, bindSendFlags)
	if err != nil {
		return err
	}
	c, err := client.New(cfg.Client.URL,
		client.WithRetry(cfg.Client.MaxTries, cfg.Client.RetryDelay, cfg.Client.BackoffFactor),
	)
	if err != nil {
		return err
	}
	n := client.Notification{ID: cfg.Client.APIKey}
	n.Title, _ = fs.GetString("title")
	n.Message, _ = fs.GetString("message")
	n.Type, _ = fs.GetString("type")
	if err := c.Send(ctx, n); err != nil {
		return err
	}
	printer.Println("Notification Sent!")
	return nil
}
