package timeline

import "fmt"

// Item places one caption image on the timeline. Frames are absolute
// positions under the sequence frame rate.
type Item struct {
	File       string
	StartFrame int64
	EndFrame   int64
	OffsetX    int
	OffsetY    int
}

// Dims is the pixel size of the target sequence.
type Dims struct {
	Width  int
	Height int
}

// sequenceDuration is the last item's end frame; items arrive in
// caption order so the last one ends the timeline.
func sequenceDuration(items []Item) int64 {
	if len(items) == 0 {
		return 0
	}
	return items[len(items)-1].EndFrame
}

// rationalSeconds expresses a frame count as an exact "num/dens"
// seconds value. Editors accumulate drift from decimal rates, so times
// are always written as rational pairs.
func rationalSeconds(frames int64, fpsNum, fpsDen int) string {
	return fmt.Sprintf("%d/%ds", frames*int64(fpsDen), fpsNum)
}
