// Package adscript finds the marker-delimited ad blocks inside a merged
// episode script and ties them back to the placement copy they carry.
package adscript

import (
	"strings"

	"castads/internal/core/domain"
	"castads/internal/core/textkit"
)

// ContextLines is how many script lines on each side of an ad block belong
// to its surroundings.
const ContextLines = 3

// Block is one ad block. Start and End are the line indices of its start and
// end markers.
type Block struct {
	Start int
	End   int
	Text  string
}

// Blocks returns every well-formed ad block of script in order. An
// unterminated start marker is ignored.
func Blocks(script string) []Block {
	lines := strings.Split(script, "\n")
	var out []Block
	start := -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case domain.AdStartMarker:
			start = i
		case domain.AdEndMarker:
			if start < 0 {
				continue
			}
			out = append(out, Block{Start: start, End: i, Text: strings.Join(lines[start+1:i], "\n")})
			start = -1
		}
	}
	return out
}

// Locate returns the block whose text is closest to the ad copy. Embedding
// may reword the copy, so blocks are compared by word overlap; a block that
// shares no significant word with the copy is never chosen.
func Locate(script string, ad domain.AdContent) (Block, bool) {
	want := textkit.WordSet(ad.Script, 3)
	best, bestScore := Block{}, 0.0
	for _, b := range Blocks(script) {
		if b.Text == ad.Script {
			return b, true
		}
		if score := textkit.Jaccard(want, textkit.WordSet(b.Text, 3)); score > bestScore {
			best, bestScore = b, score
		}
	}
	return best, bestScore > 0
}

// Context returns the ad's own block with up to around lines of surrounding
// script on each side. Lines of other ad blocks are never included. When the
// block cannot be found the ad copy alone is returned.
func Context(script string, ad domain.AdContent, around int) string {
	b, ok := Locate(script, ad)
	if !ok {
		return ad.Script
	}
	lines := strings.Split(script, "\n")
	inOther := otherBlockLines(script, b, len(lines))

	from := b.Start
	for n := 0; n < around && from > 0 && !inOther[from-1]; n++ {
		from--
	}
	to := b.End
	for n := 0; n < around && to < len(lines)-1 && !inOther[to+1]; n++ {
		to++
	}
	return strings.Join(lines[from:to+1], "\n")
}

// Remove deletes the ad's block, markers included. The script is returned
// unchanged when the block cannot be found.
func Remove(script string, ad domain.AdContent) string {
	b, ok := Locate(script, ad)
	if !ok {
		return script
	}
	lines := strings.Split(script, "\n")
	out := make([]string, 0, len(lines)-(b.End-b.Start+1))
	out = append(out, lines[:b.Start]...)
	out = append(out, lines[b.End+1:]...)
	return strings.Join(out, "\n")
}

func otherBlockLines(script string, own Block, n int) []bool {
	in := make([]bool, n)
	for _, b := range Blocks(script) {
		if b.Start == own.Start {
			continue
		}
		for i := b.Start; i <= b.End && i < n; i++ {
			in[i] = true
		}
	}
	return in
}
