package score

import (
	"sort"
	"strings"
	"time"
)

const (
	hundredPercent = 100

	// NoDimension groups mentions without a dimension label.
	NoDimension = "Sin dimensión"
)

// SortKey orders a list of mentions.
type SortKey string

const (
	SortNone  SortKey = ""
	SortIP    SortKey = "ip"
	SortScore SortKey = "score"
	SortDate  SortKey = "date"
)

// SortKeys lists the supported sort keys.
var SortKeys = []SortKey{SortIP, SortScore, SortDate}

// Counts is the number of mentions per sentiment.
type Counts struct {
	Negative int `json:"negative" yaml:"negative"`
	Neutral  int `json:"neutral" yaml:"neutral"`
	Positive int `json:"positive" yaml:"positive"`
	Total    int `json:"total" yaml:"total"`
}

// Distribution is the percentage share of each sentiment (0-100).
type Distribution struct {
	Negative float64 `json:"negative" yaml:"negative"`
	Neutral  float64 `json:"neutral" yaml:"neutral"`
	Positive float64 `json:"positive" yaml:"positive"`
}

// DimensionStat aggregates the mentions tagged with one dimension label.
type DimensionStat struct {
	Dimension      string  `json:"dimension" yaml:"dimension"`
	Mentions       int     `json:"mentions" yaml:"mentions"`
	MeanScore      float64 `json:"mean_score" yaml:"meanScore"`
	InfluencePower float64 `json:"influence_power" yaml:"influencePower"`
}

// TopMention returns the mention with the highest influence power among those
// whose sentiment matches sign. Ties go to the earliest date, then to the
// earliest position in the list. The bool is false when nothing matches.
func TopMention(ms []Mention, sign Sign) (*Mention, bool) {
	var top *Mention
	for i := range ms {
		m := &ms[i]
		if !matchesSign(m.SentimentValue, sign) {
			continue
		}
		if top == nil ||
			m.InfluencePower > top.InfluencePower ||
			(m.InfluencePower == top.InfluencePower && m.Date.Before(top.Date)) {
			top = m
		}
	}
	if top == nil {
		return nil, false
	}
	found := *top
	return &found, true
}

func matchesSign(v int, sign Sign) bool {
	switch sign {
	case SignPositive:
		return v > 0
	case SignNegative:
		return v < 0
	default:
		return false
	}
}

// SentimentCounts counts the mentions per sentiment value.
func SentimentCounts(ms []Mention) Counts {
	var c Counts
	for _, m := range ms {
		switch {
		case m.SentimentValue > 0:
			c.Positive++
		case m.SentimentValue < 0:
			c.Negative++
		default:
			c.Neutral++
		}
	}
	c.Total = len(ms)
	return c
}

// SentimentDistribution returns the percentage of mentions per sentiment.
// All buckets are 0 for an empty list.
func SentimentDistribution(ms []Mention) Distribution {
	c := SentimentCounts(ms)
	if c.Total == 0 {
		return Distribution{}
	}
	total := float64(c.Total)
	return Distribution{
		Negative: float64(c.Negative) / total * hundredPercent,
		Neutral:  float64(c.Neutral) / total * hundredPercent,
		Positive: float64(c.Positive) / total * hundredPercent,
	}
}

// MentionsOnDate returns the mentions published on the calendar day of day,
// ignoring the time of day. SortNone keeps the input order.
func MentionsOnDate(ms []Mention, day time.Time, by SortKey) []Mention {
	y, mo, d := day.Date()

	list := make([]Mention, 0)
	for _, m := range ms {
		my, mmo, md := m.Date.Date()
		if my == y && mmo == mo && md == d {
			list = append(list, m)
		}
	}

	SortMentions(list, by)
	return list
}

// SortMentions sorts in place: influence power and score descending, date
// ascending. Equal keys keep their relative order.
func SortMentions(list []Mention, by SortKey) {
	var less func(i, j int) bool
	switch by {
	case SortIP:
		less = func(i, j int) bool { return list[i].InfluencePower > list[j].InfluencePower }
	case SortScore:
		less = func(i, j int) bool { return list[i].Score > list[j].Score }
	case SortDate:
		less = func(i, j int) bool { return list[i].Date.Before(list[j].Date) }
	default:
		return
	}
	sort.SliceStable(list, less)
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == SortNone {
		return SortNone, true
	}
	for _, v := range SortKeys {
		if v == k {
			return k, true
		}
	}
	return SortNone, false
}

// DimensionBreakdown aggregates mentions per dimension label, most mentioned
// first.
func DimensionBreakdown(ms []Mention) []DimensionStat {
	idx := make(map[string]int)
	list := make([]DimensionStat, 0)

	for _, m := range ms {
		name := strings.TrimSpace(m.Dimension)
		if name == "" {
			name = NoDimension
		}
		i, ok := idx[name]
		if !ok {
			i = len(list)
			idx[name] = i
			list = append(list, DimensionStat{Dimension: name})
		}
		list[i].Mentions++
		list[i].MeanScore += m.Score
		list[i].InfluencePower += m.InfluencePower
	}

	for i := range list {
		list[i].MeanScore /= float64(list[i].Mentions)
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Mentions != list[j].Mentions {
			return list[i].Mentions > list[j].Mentions
		}
		return list[i].Dimension < list[j].Dimension
	})

	return list
}
