package main

import (
	"fmt"
	"os"
	"time"

	"github.com/IdealAdarsh9/Aadhaar-risk-engine/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	name    = "arisk"
	version = "v0.0.1-default"
	commit  = ""

	cfg    *config.Config
	cfgDir string

	debug = false

	debugFlag = &cli.BoolFlag{
		Name:        "debug",
		Usage:       "Prints verbose logs (optional, default: false)",
		Destination: &debug,
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: fmt.Sprintf("Output format: %s or %s (optional, default: %s)", formatJSON, formatYAML, formatJSON),
		Value: formatJSON,
	}
)

func main() {
	initLogging()

	app := &cli.App{
		Name:     name,
		Version:  fmt.Sprintf("%s - (commit: %s)", version, commit),
		Compiled: time.Now(),
		Usage:    "Aadhaar enrolment risk scoring",
		Flags: []cli.Flag{
			debugFlag,
		},
		Commands: []*cli.Command{
			scoreCmd,
			serverCmd,
			configCmd,
		},
		Before: func(c *cli.Context) error {
			dir, created, err := config.GetOrCreateHomeDir(name)
			if err != nil {
				return err
			}
			if created {
				log.Debugf("created app dir: %s", dir)
			}
			cfgDir = dir

			cfg, err = config.ReadOrCreate(cfgDir)
			if err != nil {
				return err
			}

			if c.Bool(debugFlag.Name) {
				log.SetLevel(log.DebugLevel)
			} else if lev, err := log.ParseLevel(cfg.LogLevel); err == nil {
				log.SetLevel(lev)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fatalErr(err)
	}
}

func fatalErr(err error) {
	if err != nil {
		log.Fatalf("fatal error: %v", err)
		os.Exit(1)
	}
}

func initLogging() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.SetReportCaller(false)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          false,
		DisableTimestamp:       true,
		ForceColors:            true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}
