package pdftext

import (
	"bytes"
	"context"
	"testing"
)

func TestExtractPagesGarbageInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":          nil,
		"not a pdf":      []byte("ceci n'est pas un PDF"),
		"truncated":      []byte("%PDF-1.4\n1 0 obj"),
		"binary garbage": bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64),
	}

	c := NewConverter(nil)
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			// Must come back as an error, never a panic.
			if _, err := c.ExtractPages(context.Background(), content); err == nil {
				t.Error("expected an error for unreadable input")
			}
		})
	}
}

func TestExtractPagesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation is honored even if the bytes are unreadable anyway.
	if _, err := NewConverter(nil).ExtractPages(ctx, []byte("%PDF-1.4")); err == nil {
		t.Error("expected an error")
	}
}
