package timing

import (
	"math/big"
)

// FrameInfo is the frame-accurate interval of one caption under a
// rational frame rate.
type FrameInfo struct {
	InFrame  int64
	OutFrame int64
	FPSNum   int
	FPSDen   int
}

func (f FrameInfo) DurationFrames() int64 {
	return f.OutFrame - f.InFrame
}

// MsToFrames converts millisecond timestamps to frame counts using
// exact rational arithmetic: frame = round_half_up(ms/1000 * num/den).
// Rounding is half-up, not half-even, to stay bit-exact with editor
// imports; binary floating point would drift on rates like 24000/1001.
//
// Intervals that round to zero or negative length are widened to a
// minimum of 2 frames, which some editors require to show a clip.
func MsToFrames(startMS, endMS int64, fpsNum, fpsDen int) FrameInfo {
	inFrame := frameAt(startMS, fpsNum, fpsDen)
	outFrame := frameAt(endMS, fpsNum, fpsDen)

	if outFrame <= inFrame {
		outFrame = inFrame + 2
	}

	return FrameInfo{
		InFrame:  inFrame,
		OutFrame: outFrame,
		FPSNum:   fpsNum,
		FPSDen:   fpsDen,
	}
}

// round_half_up((ms * num) / (1000 * den)) == floor((2n + d) / 2d)
func frameAt(ms int64, fpsNum, fpsDen int) int64 {
	n := new(big.Int).Mul(big.NewInt(ms), big.NewInt(int64(fpsNum)))
	d := new(big.Int).Mul(big.NewInt(1000), big.NewInt(int64(fpsDen)))

	num := new(big.Int).Lsh(n, 1)
	num.Add(num, d)
	den := new(big.Int).Lsh(d, 1)

	return new(big.Int).Div(num, den).Int64()
}
