package score

import (
	"strings"
	"time"
)

// Sentiment is the pre-labeled polarity of a mention.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

var sentimentValues = map[Sentiment]int{
	Positive: 1,
	Neutral:  0,
	Negative: -1,
}

// ParseSentiment normalizes a raw label. Unknown or empty labels are neutral.
func ParseSentiment(s string) Sentiment {
	v := Sentiment(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sentimentValues[v]; ok {
		return v
	}
	return Neutral
}

// Value maps the sentiment to -1, 0 or 1.
func (s Sentiment) Value() int {
	return sentimentValues[s]
}

// Sign selects positive or negative mentions.
type Sign int

const (
	SignNegative Sign = -1
	SignPositive Sign = 1
)

// RawMention is one row of the mentions table as read from the input.
type RawMention struct {
	Date       time.Time          `json:"date" yaml:"date"`
	Title      string             `json:"title" yaml:"title"`
	Snippet    string             `json:"snippet" yaml:"snippet"`
	Dimension  string             `json:"dimension" yaml:"dimension"`
	Sentiment  string             `json:"sentiment" yaml:"sentiment"`
	PageType   string             `json:"page_type" yaml:"pageType"`
	Impact     *float64           `json:"impact,omitempty" yaml:"impact,omitempty"`
	Engagement map[string]float64 `json:"engagement,omitempty" yaml:"engagement,omitempty"`
}

// MentionSet is the mentions table along with the optional columns it carries.
// HasImpact and EngagementColumns describe the columns, not individual cells.
type MentionSet struct {
	Mentions          []RawMention
	HasImpact         bool
	EngagementColumns []string
}

// Mention is a RawMention with its derived scoring fields.
type Mention struct {
	RawMention     `yaml:",inline"`
	SentimentValue int     `json:"sentiment_value" yaml:"sentimentValue"`
	EngagementNorm float64 `json:"engagement_norm" yaml:"engagementNorm"`
	InfluenceNorm  float64 `json:"influence_norm" yaml:"influenceNorm"`
	SourceWeight   float64 `json:"source_weight" yaml:"sourceWeight"`
	InfluencePower float64 `json:"influence_power" yaml:"influencePower"`
	Score          float64 `json:"score" yaml:"score"`
}
