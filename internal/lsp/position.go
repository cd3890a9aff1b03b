package lsp

import (
	"sort"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex converts between byte offsets and LSP positions, which count
// UTF-16 code units within a line.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (li *lineIndex) lineEnd(line int) int {
	if line+1 < len(li.starts) {
		return li.starts[line+1] - 1
	}
	return len(li.text)
}

func (li *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(li.text)))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1

	char := 0
	for _, r := range li.text[li.starts[line]:offset] {
		char += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func (li *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(li.starts) {
		return len(li.text)
	}
	start, end := li.starts[line], li.lineEnd(line)

	units := 0
	for i, r := range li.text[start:end] {
		if units >= int(pos.Character) {
			return start + i
		}
		units += utf16.RuneLen(r)
	}
	return end
}

func (li *lineIndex) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: li.position(start), End: li.position(end)}
}
