// Package main is the entry point of the scorekeeper backend.
package main

import (
	"context"
	"fmt"
	"os"
	"scorekeeper/internal/di"
	"scorekeeper/internal/structures"

	"github.com/urfave/cli/v2"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "scorekeeper",
		Usage:   "classroom score tracking backend",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				EnvVars: []string{"SCORES_CONFIG"},
				Value:   "./config.yaml",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "log to the console as well as to files",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	flags := &structures.CliFlags{
		ConfigPath: c.String("config"),
		DebugMode:  c.Bool("debug"),
	}

	app, cleanup, err := di.InitApp(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(context.Background())
}
