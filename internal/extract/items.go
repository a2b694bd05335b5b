package extract

import (
	"regexp"
	"strings"
)

// itemMarkerRe is the structural delimiter opening every line item: a
// 5-digit position code at start of line followed by a 7-or-8-digit item
// code. Descriptions legitimately wrap across lines, so splitting on this
// marker is the only reliable way to tell a wrapped line from a new item.
var itemMarkerRe = regexp.MustCompile(`(?m)^(\d{5})[ \t]+(\d{7,8})\b`)

// SplitItems partitions isolated table text into one raw block per line
// item. Text before the first marker is discarded. Zero markers yield an
// empty slice, not an error.
func SplitItems(tableText string) []ItemBlock {
	matches := itemMarkerRe.FindAllStringSubmatchIndex(tableText, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]ItemBlock, 0, len(matches))
	for i, m := range matches {
		contentStart := m[1]
		contentEnd := len(tableText)
		if i+1 < len(matches) {
			contentEnd = matches[i+1][0]
		}
		blocks = append(blocks, ItemBlock{
			Position:   tableText[m[2]:m[3]],
			ItemCode:   tableText[m[4]:m[5]],
			RawContent: strings.TrimSpace(tableText[contentStart:contentEnd]),
		})
	}
	return blocks
}
