package ingest

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/net"
	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

// Source locates the two input files. Each location is a local path or an
// http(s) URL.
type Source struct {
	Mentions      string
	Scores        string
	MentionsSheet string
	ScoresSheet   string
}

// Inputs is the parsed content of both files.
type Inputs struct {
	Mentions score.MentionSet
	Scores   []score.Snapshot
}

// Load reads and parses both input files.
func Load(ctx context.Context, src Source, opts Options) (*Inputs, error) {
	if src.Mentions == "" || src.Scores == "" {
		return nil, errors.New("both mentions and scores files are required")
	}

	mt, err := openTable(ctx, src.Mentions, src.MentionsSheet)
	if err != nil {
		return nil, errors.Wrap(err, "error reading mentions file")
	}

	st, err := openTable(ctx, src.Scores, src.ScoresSheet)
	if err != nil {
		return nil, errors.Wrap(err, "error reading scores file")
	}

	return Parse(mt, st, opts)
}

// Parse maps already read tables onto the scoring model.
func Parse(mentions, scores *table.Table, opts Options) (*Inputs, error) {
	set, err := Mentions(mentions, opts)
	if err != nil {
		return nil, err
	}

	series, err := Snapshots(scores, opts)
	if err != nil {
		return nil, err
	}

	return &Inputs{Mentions: set, Scores: series}, nil
}

// LoadMentions reads only a mentions file, for operations that do not need
// the aggregated scores.
func LoadMentions(ctx context.Context, loc, sheet string, opts Options) (score.MentionSet, error) {
	if loc == "" {
		return score.MentionSet{}, errors.New("mentions file is required")
	}

	t, err := openTable(ctx, loc, sheet)
	if err != nil {
		return score.MentionSet{}, errors.Wrap(err, "error reading mentions file")
	}

	return Mentions(t, opts)
}

func openTable(ctx context.Context, loc, sheet string) (*table.Table, error) {
	if !net.IsURL(loc) {
		return table.Read(loc, sheet)
	}

	dir, err := os.MkdirTemp("", "repwatch-")
	if err != nil {
		return nil, errors.Wrap(err, "error creating temp dir")
	}
	defer os.RemoveAll(dir)

	name := "download"
	if u, err := url.Parse(loc); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			name = base
		}
	}
	local := filepath.Join(dir, name)

	log.Debug().Str("url", loc).Str("path", local).Msg("downloading input")
	if err := net.Download(ctx, loc, local); err != nil {
		return nil, errors.Wrapf(err, "error downloading: %s", loc)
	}

	return table.Read(local, sheet)
}
