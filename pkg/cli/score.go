package cli

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mchmarny/repwatch/pkg/data"
	"github.com/mchmarny/repwatch/pkg/ingest"
	"github.com/mchmarny/repwatch/pkg/report"
)

var (
	mentionsFileFlag = &cli.StringFlag{
		Name:     "mentions",
		Aliases:  []string{"m"},
		Usage:    "Mentions file, local path or http(s) URL (.xlsx or .csv)",
		Required: true,
	}

	scoresFileFlag = &cli.StringFlag{
		Name:     "scores",
		Aliases:  []string{"s"},
		Usage:    "Aggregated scores file, local path or http(s) URL (.xlsx or .csv)",
		Required: true,
	}

	mentionsSheetFlag = &cli.StringFlag{
		Name:  "mentions-sheet",
		Usage: "Worksheet of the mentions workbook (default: first sheet)",
	}

	scoresSheetFlag = &cli.StringFlag{
		Name:  "scores-sheet",
		Usage: "Worksheet of the scores workbook (default: first sheet)",
	}

	dbFilePathFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Also export the report into this Sqlite database file (replaced on each run)",
	}

	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Write the output to this file instead of stdout",
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Score mentions and summarize the latest reputation snapshot",
		UsageText: `repwatch score --mentions menciones.xlsx --scores puntuaciones.xlsx
   repwatch --format text score -m menciones.csv -s puntuaciones.csv
   repwatch score -m https://example.com/m.xlsx -s https://example.com/s.xlsx --db report.db`,
		HideHelpCommand: true,
		Action:          cmdScore,
		Flags: []cli.Flag{
			mentionsFileFlag,
			scoresFileFlag,
			mentionsSheetFlag,
			scoresSheetFlag,
			dbFilePathFlag,
			outFlag,
		},
	}
)

func cmdScore(c *cli.Context) error {
	cfg := getConfig(c)

	src := ingest.Source{
		Mentions:      c.String(mentionsFileFlag.Name),
		Scores:        c.String(scoresFileFlag.Name),
		MentionsSheet: c.String(mentionsSheetFlag.Name),
		ScoresSheet:   c.String(scoresSheetFlag.Name),
	}

	in, err := ingest.Load(c.Context, src, cfg.Config.IngestOptions())
	if err != nil {
		return errors.Wrap(err, "failed to load inputs")
	}

	r, err := report.Build(in.Mentions, in.Scores, cfg.Config.Weights())
	if err != nil {
		return errors.Wrap(err, "failed to score inputs")
	}

	if dbPath := c.String(dbFilePathFlag.Name); dbPath != "" {
		if err := exportReport(dbPath, r); err != nil {
			return err
		}
	}

	return writeOutput(c, c.String(outFlag.Name), r)
}

func exportReport(dbPath string, r *report.Report) error {
	if err := data.Init(dbPath); err != nil {
		return errors.Wrap(err, "initializing database")
	}

	db, err := data.GetDB(dbPath)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer db.Close()

	res, err := data.SaveReport(db, r)
	if err != nil {
		return errors.Wrap(err, "exporting report")
	}

	log.Debug().Str("path", dbPath).Int("mentions", res.Mentions).Msg("export complete")
	return nil
}
