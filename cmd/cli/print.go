package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/summarizer"
)

func printTrending(out io.Writer, subreddit string, resp *model.TrendingResponse) {
	fmt.Fprintf(out, "🔥 r/%s (%d results)\n", subreddit, resp.PageInfo.TotalResults)
	for i, item := range resp.Items {
		fmt.Fprintf(out, "%2d. %s\n", i+1, item.Title)
		fmt.Fprintf(out, "    %s by %s | %s | %d comments\n", item.Subreddit, item.Creator, item.Views, item.Statistics.Comments)
		fmt.Fprintf(out, "    %s\n", item.URL)
	}
	if resp.NextPageToken != nil {
		fmt.Fprintf(out, "Next page: -after %s\n", *resp.NextPageToken)
	}
}

func printSnapshot(out io.Writer, snap summarizer.Snapshot) {
	if snap.Error != "" {
		fmt.Fprintf(out, "❌ %s\n", snap.Error)
		return
	}
	if snap.ThumbnailURL != "" {
		fmt.Fprintf(out, "🎬 %s\n", snap.ThumbnailURL)
	}
	printResult(out, snap.Result)
}

func printResult(out io.Writer, result *model.SummaryResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(out, "Summary (%s, %d words, %s, %.0f%% confidence)\n", result.Duration, result.WordCount, result.Sentiment, result.Confidence)
	fmt.Fprintf(out, "%s\n", result.Summary)
	if len(result.KeyPoints) > 0 {
		fmt.Fprintln(out, "Key points:")
		for _, point := range result.KeyPoints {
			fmt.Fprintf(out, "  • %s\n", point)
		}
	}
	if len(result.Topics) > 0 {
		fmt.Fprintf(out, "Topics: %s\n", strings.Join(result.Topics, ", "))
	}
}

func printRecent(out io.Writer, entries []model.RecentSummaryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recent summaries")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s  %s\n", entry.Date.Format("2006-01-02 15:04"), entry.Title, entry.URL)
	}
}
