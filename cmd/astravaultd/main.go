package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Jakes-stx/AstraVault/internal/config"
	"github.com/Jakes-stx/AstraVault/internal/interface/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "astravaultd"
	app.Usage = "AstraVault conditional-release vault daemon"
	app.Flags = []cli.Flag{
		datadirFlag, portFlag, logLevelFlag, dbTypeFlag,
		claimModeFlag, tickSourceFlag, tickIntervalFlag, tickStartFlag,
	}
	app.Action = start

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func start(c *cli.Context) error {
	for flagName, key := range flagToViperKey {
		if c.IsSet(flagName) {
			viper.Set(key, c.Generic(flagName))
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	log.SetLevel(log.Level(cfg.LogLevel))

	appSvc, err := cfg.AppService()
	if err != nil {
		log.Fatalf("failed to create app service: %s", err)
	}

	svc := web.NewService(cfg.Port, appSvc, cfg.ManualTicks())

	log.Info("starting service...")
	if err := svc.Start(); err != nil {
		log.Fatalf("failed to start service: %s", err)
	}
	log.Infof("astravaultd listens on: %d", cfg.Port)

	log.RegisterExitHandler(svc.Stop)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(
		sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGHUP, os.Interrupt,
	)
	<-sigChan

	log.Info("shutting down service...")
	log.Exit(0)
	return nil
}
