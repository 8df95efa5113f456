package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mchmarny/repwatch/pkg/config"
	"github.com/mchmarny/repwatch/pkg/logging"
	"github.com/mchmarny/repwatch/pkg/report"
)

const (
	appName      = "repwatch"
	appConfigKey = "app-config"
	fileMode     = 0600
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: fmt.Sprintf("Output format [%s]", strings.Join(report.Formats, ", ")),
		Value: report.FormatJSON,
	}

	logJSONFlag = &cli.BoolFlag{
		Name:  "log-json",
		Usage: "Write logs to stderr as JSON instead of console text",
	}

	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: fmt.Sprintf("Path to the scoring config file (default: ~/.%s/%s)", appName, config.ConfigFileName),
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("fatal error")
		os.Exit(1)
	}
}

type appConfig struct {
	Config     *config.Config
	ConfigPath string
	Format     string
	Debug      bool
}

func getConfig(c *cli.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Reputation monitoring from mention and score spreadsheets",
		Flags: []cli.Flag{
			debugFlag,
			formatFlag,
			logJSONFlag,
			configFlag,
		},
		Commands: []*cli.Command{
			scoreCmd,
			mentionsCmd,
			serverCmd,
			configCmd,
		},
		Before: func(c *cli.Context) error {
			level := "info"
			if c.Bool(debugFlag.Name) {
				level = "debug"
			}
			if c.Bool(logJSONFlag.Name) {
				log.Logger = logging.NewJSONLogger(os.Stderr, level)
			} else {
				logging.SetDefaultCLILogger(level)
			}

			format, ok := report.ParseFormat(c.String(formatFlag.Name))
			if !ok {
				return errors.Errorf("unsupported output format: %s", c.String(formatFlag.Name))
			}

			path := c.String(configFlag.Name)
			if path == "" {
				path = defaultConfigPath()
			}

			cfg, err := config.Load(path)
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Config:     cfg,
				ConfigPath: path,
				Format:     format,
				Debug:      c.Bool(debugFlag.Name),
			}
			return nil
		},
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug().Err(err).Msg("error getting home dir, using current dir instead")
		return config.ConfigFileName
	}
	return filepath.Join(home, "."+appName, config.ConfigFileName)
}

// writeOutput encodes v to the out file when set, to the app writer otherwise.
func writeOutput(c *cli.Context, out string, v any) (retErr error) {
	cfg := getConfig(c)

	var w io.Writer = c.App.Writer
	if out != "" {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
		if err != nil {
			return errors.Wrapf(err, "error creating output file: %s", out)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && retErr == nil {
				retErr = errors.Wrap(cerr, "closing output file")
			}
		}()
		w = f
	}

	if err := report.Encode(w, v, cfg.Format); err != nil {
		return errors.Wrap(err, "error encoding result")
	}
	return nil
}
