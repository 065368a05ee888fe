package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/storage"
	"github.com/pep299/socialspy/internal/summarizer"
)

const replHelp = `Commands:
  <url>     summarize a YouTube URL
  copy      copy the current summary
  recent    list recent summaries
  stats     show counters
  last      show the last summary saved in this session
  help      show this message
  quit      exit
`

// runREPL drives the summarizer panel from line input
func runREPL(ctx context.Context, panel *summarizer.Panel, session *storage.Store, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, replHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(out, replHelp)
		case "copy":
			if panel.Copy(ctx) {
				fmt.Fprintln(out, "Copied!")
			} else {
				fmt.Fprintln(out, "Nothing copied")
			}
		case "recent":
			printRecent(out, panel.Snapshot().Recent)
		case "stats":
			stats := panel.Stats()
			fmt.Fprintf(out, "Summaries: %d  Confidence: %.0f%%  Words: %d\n", stats.RecentCount, stats.Confidence, stats.WordCount)
		case "last":
			if last, ok := storage.Get[model.SummaryResult](ctx, session, lastSummaryKey); ok {
				printResult(out, &last)
			} else {
				fmt.Fprintln(out, "No summary saved in this session")
			}
		default:
			panel.SetInput(line)
			snap := panel.Submit(ctx)
			printSnapshot(out, snap)
			if snap.State == summarizer.StateSucceeded {
				saveLast(ctx, session, snap)
			}
		}
	}

	return scanner.Err()
}

func saveLast(ctx context.Context, session *storage.Store, snap summarizer.Snapshot) {
	if snap.Result != nil {
		session.Set(ctx, lastSummaryKey, snap.Result)
	}
}
