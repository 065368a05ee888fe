package model

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known sentiments
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

type SummaryResult struct {
	Summary    string    `json:"summary"`
	KeyPoints  []string  `json:"keyPoints"`
	Duration   string    `json:"duration"`
	WordCount  int       `json:"wordCount"`
	Sentiment  Sentiment `json:"sentiment"`
	Topics     []string  `json:"topics"`
	Confidence float64   `json:"confidence"`
}

type RecentSummaryEntry struct {
	URL   string    `json:"url"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}
