package subtitle

import (
	"fmt"
	"math/rand"
	"strings"
)

// AssignAccents walks the caption sequence in order and decides, for
// each caption, which accent color it gets and which words carry it.
//
// The first caption takes startingIndex modulo accentCount; every
// following caption draws uniformly from the indices that exclude its
// predecessor's, so adjacent captions never share an accent when more
// than one color is configured. Two-line captions accent one whole
// line, picked at random; one-line captions accent the trailing half
// of their words, rounded up.
//
// The walk advances rng in strict caption order, so a fixed seed
// reproduces the full assignment.
func AssignAccents(captions []Caption, accentCount, startingIndex int, rng *rand.Rand) error {
	if accentCount < 1 {
		return fmt.Errorf("at least one accent color is required, got %d", accentCount)
	}

	prev := -1
	for i := range captions {
		c := &captions[i]

		var accentIdx int
		switch {
		case accentCount == 1:
			accentIdx = 0
		case i == 0:
			accentIdx = startingIndex % accentCount
		default:
			choices := make([]int, 0, accentCount-1)
			for x := 0; x < accentCount; x++ {
				if x != prev {
					choices = append(choices, x)
				}
			}
			accentIdx = choices[rng.Intn(len(choices))]
		}
		c.AccentIndex = accentIdx
		prev = accentIdx

		if len(c.Lines) == 2 {
			chosen := rng.Intn(2)
			c.ChosenLine = chosen
			c.WordsColored = len(strings.Fields(c.Lines[chosen]))
		} else {
			words := strings.Fields(c.Lines[0])
			c.WordsColored = (len(words) + 1) / 2
			c.ChosenLine = 0
		}
	}
	return nil
}
