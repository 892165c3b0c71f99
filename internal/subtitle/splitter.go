package subtitle

import (
	"regexp"
	"strings"
)

// DefaultMaxLineLength is the character threshold above which a
// single-line caption is split in two.
const DefaultMaxLineLength = 16

// digit groups separated by single spaces stay one token, so a grouped
// numeral like "128 000" is never split across lines
var tokenRegex = regexp.MustCompile(`\d+(?: \d+)*|\S+`)

// SplitLongLines rewrites every single-line caption longer than maxLen
// into two lines of the most similar length, without breaking tokens.
// Captions that already have two lines, fit under the threshold, or
// hold fewer than two tokens pass through unchanged.
func SplitLongLines(captions []Caption, maxLen int) []Caption {
	for i := range captions {
		c := &captions[i]
		if len(c.Lines) != 1 || len(c.Lines[0]) <= maxLen {
			continue
		}

		tokens := tokenRegex.FindAllString(c.Lines[0], -1)
		if len(tokens) < 2 {
			continue
		}

		bestSplit := -1
		minDiff := -1
		for j := 1; j < len(tokens); j++ {
			line1 := strings.Join(tokens[:j], " ")
			line2 := strings.Join(tokens[j:], " ")
			diff := len(line1) - len(line2)
			if diff < 0 {
				diff = -diff
			}
			if minDiff < 0 || diff < minDiff {
				minDiff = diff
				bestSplit = j
			}
		}

		if bestSplit > 0 {
			c.Lines = []string{
				strings.Join(tokens[:bestSplit], " "),
				strings.Join(tokens[bestSplit:], " "),
			}
		}
	}
	return captions
}
