package main

import (
	"fmt"

	"github.com/Jakes-stx/AstraVault/internal/config"
	"github.com/urfave/cli/v2"
)

// env returns a list of strings prefixed with `ASTRAVAULT_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("ASTRAVAULT_%s", value)
	}

	return envs
}

var (
	datadirFlag = &cli.StringFlag{
		Name: "datadir", EnvVars: env("DATADIR"),
		Usage: "directory to store data",
	}
	portFlag = &cli.UintFlag{
		Name: "port", EnvVars: env("PORT"),
		Usage: "port to listen on",
		Value: uint(config.DefaultPort),
	}
	logLevelFlag = &cli.IntFlag{
		Name: "log-level", EnvVars: env("LOG_LEVEL"),
		Usage: "logging level (0-6, where 6 is trace)",
	}
	dbTypeFlag = &cli.StringFlag{
		Name: "db-type", EnvVars: env("DB_TYPE"),
		Usage: "database type (badger)",
	}
	claimModeFlag = &cli.StringFlag{
		Name: "claim-mode", EnvVars: env("CLAIM_MODE"),
		Usage: "claim variant (multi, legacy)",
	}
	tickSourceFlag = &cli.StringFlag{
		Name: "tick-source", EnvVars: env("TICK_SOURCE"),
		Usage: "chain tick source (system, manual)",
	}
	tickIntervalFlag = &cli.Int64Flag{
		Name: "tick-interval", EnvVars: env("TICK_INTERVAL"),
		Usage: "seconds per tick when the tick source is system",
	}
	tickStartFlag = &cli.Uint64Flag{
		Name: "tick-start", EnvVars: env("TICK_START"),
		Usage: "initial tick when the tick source is manual",
	}
)

// viper keys mirroring each flag, applied only when the flag is set so
// env-only configuration keeps working.
var flagToViperKey = map[string]string{
	datadirFlag.Name:      "DATADIR",
	portFlag.Name:         "PORT",
	logLevelFlag.Name:     "LOG_LEVEL",
	dbTypeFlag.Name:       "DB_TYPE",
	claimModeFlag.Name:    "CLAIM_MODE",
	tickSourceFlag.Name:   "TICK_SOURCE",
	tickIntervalFlag.Name: "TICK_INTERVAL",
	tickStartFlag.Name:    "TICK_START",
}
