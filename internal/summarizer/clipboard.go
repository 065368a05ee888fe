package summarizer

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// Clipboard receives copied summary text
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// TerminalClipboard copies text through the OSC 52 terminal escape,
// which most terminal emulators forward to the system clipboard.
type TerminalClipboard struct {
	w io.Writer
}

func NewTerminalClipboard(w io.Writer) *TerminalClipboard {
	return &TerminalClipboard{w: w}
}

func (c *TerminalClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(c.w, seq); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}
