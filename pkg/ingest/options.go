package ingest

import "github.com/araddon/dateparse"

// Options controls how input tables are read.
type Options struct {
	// EngagementColumns are summed into the engagement of a mention.
	EngagementColumns []string
	// DayFirst reads ambiguous slash dates such as 05/01/2024 as
	// day/month/year. Dates that only parse one way are read that way
	// regardless.
	DayFirst bool
}

// DefaultOptions returns the default engagement columns with day-first dates.
func DefaultOptions() Options {
	cols := make([]string, len(DefaultEngagementColumns))
	copy(cols, DefaultEngagementColumns)
	return Options{
		EngagementColumns: cols,
		DayFirst:          true,
	}
}

func (o Options) dateOptions() []dateparse.ParserOption {
	return []dateparse.ParserOption{
		dateparse.PreferMonthFirst(!o.DayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	}
}
