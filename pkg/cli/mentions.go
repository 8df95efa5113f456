package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mchmarny/repwatch/pkg/ingest"
	"github.com/mchmarny/repwatch/pkg/score"
)

const dayLayout = "2006-01-02"

var (
	mentionsInputFlag = &cli.StringFlag{
		Name:     "mentions",
		Aliases:  []string{"m"},
		Usage:    "Mentions file, local path or http(s) URL (.xlsx or .csv)",
		Required: true,
	}

	dayFlag = &cli.StringFlag{
		Name:     "date",
		Aliases:  []string{"d"},
		Usage:    "Calendar day to list (YYYY-MM-DD)",
		Required: true,
	}

	sortFlag = &cli.StringFlag{
		Name:  "sort",
		Usage: fmt.Sprintf("Sort key [%s] (default: input order)", strings.Join(sortKeyNames(), ", ")),
	}

	mentionsCmd = &cli.Command{
		Name:    "mentions",
		Aliases: []string{"m"},
		Usage:   "List the scored mentions published on a given day",
		UsageText: `repwatch mentions --mentions menciones.xlsx --date 2024-01-15
   repwatch --format text mentions -m menciones.csv -d 2024-01-15 --sort ip`,
		HideHelpCommand: true,
		Action:          cmdMentions,
		Flags: []cli.Flag{
			mentionsInputFlag,
			mentionsSheetFlag,
			dayFlag,
			sortFlag,
			outFlag,
		},
	}
)

func cmdMentions(c *cli.Context) error {
	cfg := getConfig(c)

	day, err := time.Parse(dayLayout, c.String(dayFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "invalid date, expected %s", dayLayout)
	}

	by, ok := score.ParseSortKey(c.String(sortFlag.Name))
	if !ok {
		return errors.Errorf("unsupported sort key: %s", c.String(sortFlag.Name))
	}

	set, err := ingest.LoadMentions(c.Context, c.String(mentionsInputFlag.Name), c.String(mentionsSheetFlag.Name), cfg.Config.IngestOptions())
	if err != nil {
		return errors.Wrap(err, "failed to load mentions")
	}

	list, err := score.Enrich(set, cfg.Config.Weights())
	if err != nil {
		return errors.Wrap(err, "failed to score mentions")
	}

	return writeOutput(c, c.String(outFlag.Name), score.MentionsOnDate(list, day, by))
}

func sortKeyNames() []string {
	list := make([]string, 0, len(score.SortKeys))
	for _, k := range score.SortKeys {
		list = append(list, string(k))
	}
	return list
}
