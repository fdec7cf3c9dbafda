package main

import (
	"context"
	"fmt"
	"github.com/saylorsolutions/httpnotifier/cli"
	"github.com/saylorsolutions/httpnotifier/config"
	"github.com/saylorsolutions/httpnotifier/logging"
	"github.com/saylorsolutions/httpnotifier/notification"
	"github.com/saylorsolutions/httpnotifier/patterns/messaging"
	"github.com/saylorsolutions/httpnotifier/server"
	flag "github.com/spf13/pflag"
	"io"
	"net"
)

func addServeCommand(set *cli.CommandSet, stdout io.Writer) {
	cmd := set.AddCommand("serve", "Runs the notification endpoint, and prints every notification received").
		Usage("serve [FLAGS...]")
	fs := cmd.Flags()
	addConfigFlag(fs)
	fs.StringP("addr", "a", "", "Address to listen on (default \":5020\")")
	fs.Duration("shutdown-timeout", 0, "Time allowed for in-flight work on shutdown (default 5s)")
	fs.String("log-level", "", "One of debug, info, warn, or error (default \"info\")")
	fs.String("log-file", "", "Also append JSON logs to this file")
	cmd.Does(func(ctx context.Context, flags *flag.FlagSet, printer *cli.Printer) error {
		return serve(ctx, flags, printer, stdout)
	})
}

func bindServeFlags(cfg *config.Config) map[string]any {
	return map[string]any{
		"addr":             &cfg.Server.Addr,
		"shutdown-timeout": &cfg.Server.ShutdownTimeout,
		"log-level":        &cfg.Log.Level,
		"log-file":         &cfg.Log.File,
	}
}

func serve(ctx context.Context, fs *flag.FlagSet, printer *cli.Printer, stdout io.Writer) error {
	if fs.NArg() > 0 {
		return cli.NewUsageError("unexpected arguments: %v", fs.Args())
	}
	cfg, err := loadConfig(fs, bindServeFlags)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()
	logger, closer, err := logging.New(logging.Options{
		Level:  level,
		File:   cfg.Log.File,
		Stderr: printer.Writer(),
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	messaging.InitInstance(messaging.WithFailureHandler(messaging.LogFailures(logger)))
	bus := messaging.Instance()
	log, err := notification.NewLog(bus, notification.WithMirror(stdout))
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Close()
	}()
	srv, err := server.New(bus,
		server.WithAddr(cfg.Server.Addr),
		server.WithLogger(logger),
		server.WithLog(log),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return err
	}
	log.Append(fmt.Sprintf("Notification API: http://%s%s", ln.Addr().String(), server.SendPath))
	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	if !bus.AwaitIdle(cfg.Server.ShutdownTimeout) {
		logger.Warn("Asynchronous notification handlers were still running at shutdown")
	}
	logger.Info("Notification endpoint stopped")
	return nil
}
