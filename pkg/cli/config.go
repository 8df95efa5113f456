package cli

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mchmarny/repwatch/pkg/config"
)

var (
	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "Overwrite an existing config file with the defaults",
	}

	configCmd = &cli.Command{
		Name:            "config",
		Usage:           "Manage the scoring config (source weights, engagement columns)",
		HideHelpCommand: true,
		Subcommands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the default config file unless one exists",
				Action: cmdConfigInit,
				Flags: []cli.Flag{
					forceFlag,
				},
			},
			{
				Name:   "show",
				Usage:  "Print the effective config",
				Action: cmdConfigShow,
			},
		},
	}
)

func cmdConfigInit(c *cli.Context) error {
	path := c.String(configFlag.Name)
	if path == "" {
		dir, created, err := config.GetOrCreateHomeDir(appName)
		if err != nil {
			return errors.Wrap(err, "error creating app dir")
		}
		log.Debug().Str("dir", dir).Bool("created", created).Msg("app dir")
		path = filepath.Join(dir, config.ConfigFileName)
	}

	if c.Bool(forceFlag.Name) {
		if err := config.Save(path, config.Default()); err != nil {
			return errors.Wrap(err, "error writing config")
		}
	}

	cfg, err := config.ReadOrCreate(path)
	if err != nil {
		return errors.Wrap(err, "error initializing config")
	}

	log.Info().Str("path", path).Msg("config ready")
	return writeOutput(c, "", cfg)
}

func cmdConfigShow(c *cli.Context) error {
	return writeOutput(c, "", getConfig(c).Config)
}
