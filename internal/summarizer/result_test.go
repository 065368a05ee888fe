package summarizer

import (
	"reflect"
	"testing"

	"github.com/pep299/socialspy/internal/model"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestBuildResultDefaults(t *testing.T) {
	result := BuildResult(&Response{})

	if result.Summary != "No summary available" {
		t.Errorf("Expected fallback summary, got '%s'", result.Summary)
	}
	if !reflect.DeepEqual(result.KeyPoints, []string{"Key point 1", "Key point 2", "Key point 3"}) {
		t.Errorf("Expected fallback key points, got %v", result.KeyPoints)
	}
	if result.Duration != "15:30" {
		t.Errorf("Expected duration '15:30', got '%s'", result.Duration)
	}
	if result.WordCount != 150 {
		t.Errorf("Expected word count 150, got %d", result.WordCount)
	}
	if result.Sentiment != model.SentimentNeutral {
		t.Errorf("Expected sentiment 'neutral', got '%s'", result.Sentiment)
	}
	if !reflect.DeepEqual(result.Topics, []string{"Technology", "AI", "Innovation"}) {
		t.Errorf("Expected fallback topics, got %v", result.Topics)
	}
	if result.Confidence != 85 {
		t.Errorf("Expected confidence 85, got %v", result.Confidence)
	}
}

func TestBuildResultNil(t *testing.T) {
	result := BuildResult(nil)
	if result.Summary != FallbackSummary || result.Confidence != FallbackConfidence {
		t.Errorf("Expected fallbacks for nil response, got %+v", result)
	}
}

func TestBuildResultFields(t *testing.T) {
	resp := &Response{
		Summary:    strPtr("A short talk about Go generics"),
		KeyPoints:  []string{"type parameters", "constraints"},
		Duration:   strPtr("42:10"),
		Sentiment:  strPtr("positive"),
		Topics:     []string{"Go"},
		Confidence: floatPtr(92.5),
	}

	result := BuildResult(resp)

	if result.Summary != "A short talk about Go generics" {
		t.Errorf("Unexpected summary '%s'", result.Summary)
	}
	if result.WordCount != 6 {
		t.Errorf("Expected word count 6, got %d", result.WordCount)
	}
	if len(result.KeyPoints) != 2 || result.KeyPoints[1] != "constraints" {
		t.Errorf("Unexpected key points %v", result.KeyPoints)
	}
	if result.Duration != "42:10" {
		t.Errorf("Unexpected duration '%s'", result.Duration)
	}
	if result.Sentiment != model.SentimentPositive {
		t.Errorf("Unexpected sentiment '%s'", result.Sentiment)
	}
	if len(result.Topics) != 1 || result.Topics[0] != "Go" {
		t.Errorf("Unexpected topics %v", result.Topics)
	}
	if result.Confidence != 92.5 {
		t.Errorf("Unexpected confidence %v", result.Confidence)
	}

	// Result must not alias the response slices
	resp.KeyPoints[0] = "changed"
	if result.KeyPoints[0] != "type parameters" {
		t.Error("Expected key points to be copied")
	}
}

func TestBuildResultEmptyListsKept(t *testing.T) {
	result := BuildResult(&Response{KeyPoints: []string{}, Topics: []string{}})

	if len(result.KeyPoints) != 0 {
		t.Errorf("Expected explicit empty key points to be kept, got %v", result.KeyPoints)
	}
	if len(result.Topics) != 0 {
		t.Errorf("Expected explicit empty topics to be kept, got %v", result.Topics)
	}
}

func TestBuildResultSentiment(t *testing.T) {
	tests := []struct {
		input    *string
		expected model.Sentiment
	}{
		{nil, model.SentimentNeutral},
		{strPtr("negative"), model.SentimentNegative},
		{strPtr("POSITIVE"), model.SentimentPositive},
		{strPtr("ecstatic"), model.SentimentNeutral},
		{strPtr(""), model.SentimentNeutral},
	}

	for _, test := range tests {
		result := BuildResult(&Response{Sentiment: test.input})
		if result.Sentiment != test.expected {
			t.Errorf("For %v expected '%s', got '%s'", test.input, test.expected, result.Sentiment)
		}
	}
}

func TestBuildResultConfidence(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected float64
	}{
		{"absent", nil, 85},
		{"zero", floatPtr(0), 85},
		{"in range", floatPtr(40), 40},
		{"too high", floatPtr(130), 100},
		{"negative", floatPtr(-5), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := BuildResult(&Response{Confidence: test.input})
			if result.Confidence != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, result.Confidence)
			}
		})
	}
}
