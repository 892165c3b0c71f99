package timeline

import (
	"encoding/xml"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
)

// FCP 7 XML (XMEML version 5), the flatter legacy dialect Premiere Pro
// still imports: a single video track of explicit clip items with
// absolute file URIs. The rate is a timebase plus an NTSC flag, which
// marks non-integer rates like 24000/1001 without rounding them away.

type xmemlDoc struct {
	XMLName  xml.Name      `xml:"xmeml"`
	Version  string        `xml:"version,attr"`
	Sequence xmemlSequence `xml:"sequence"`
}

type xmemlRate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

type xmemlTimecode struct {
	Rate          xmemlRate `xml:"rate"`
	String        string    `xml:"string"`
	Frame         int       `xml:"frame"`
	DisplayFormat string    `xml:"displayformat"`
}

type xmemlSequence struct {
	ID       string        `xml:"id,attr"`
	Name     string        `xml:"name"`
	Rate     xmemlRate     `xml:"rate"`
	Duration int64         `xml:"duration"`
	Timecode xmemlTimecode `xml:"timecode"`
	Media    xmemlMedia    `xml:"media"`
}

type xmemlMedia struct {
	Video xmemlVideo `xml:"video"`
}

type xmemlVideo struct {
	Format xmemlFormat  `xml:"format"`
	Tracks []xmemlTrack `xml:"track"`
}

type xmemlFormat struct {
	SampleCharacteristics xmemlSampleChars `xml:"samplecharacteristics"`
}

type xmemlSampleChars struct {
	Width            int    `xml:"width"`
	Height           int    `xml:"height"`
	Anamorphic       string `xml:"anamorphic,omitempty"`
	PixelAspectRatio string `xml:"pixelaspectratio"`
	FieldDominance   string `xml:"fielddominance,omitempty"`
}

type xmemlTrack struct {
	ClipItems []xmemlClipItem `xml:"clipitem"`
}

type xmemlClipItem struct {
	ID          string           `xml:"id,attr"`
	Name        string           `xml:"name"`
	Rate        xmemlRate        `xml:"rate"`
	Duration    int64            `xml:"duration"`
	Start       int64            `xml:"start"`
	End         int64            `xml:"end"`
	In          int64            `xml:"in"`
	Out         int64            `xml:"out"`
	SourceTrack xmemlSourceTrack `xml:"sourcetrack"`
	Alpha       string           `xml:"alpha"`
	File        xmemlFile        `xml:"file"`
}

type xmemlSourceTrack struct {
	MediaType  string `xml:"mediatype"`
	TrackIndex int    `xml:"trackindex"`
}

type xmemlFile struct {
	ID      string         `xml:"id,attr"`
	Name    string         `xml:"name"`
	PathURL string         `xml:"pathurl"`
	Rate    xmemlRate      `xml:"rate"`
	Media   xmemlFileMedia `xml:"media"`
}

type xmemlFileMedia struct {
	Video xmemlFileVideo `xml:"video"`
}

type xmemlFileVideo struct {
	Duration              int64            `xml:"duration"`
	SampleCharacteristics xmemlSampleChars `xml:"samplecharacteristics"`
}

// WriteXMEML serializes the caption items as an FCP 7 XML timeline.
// outDir anchors the absolute pathurl of each referenced image.
// trackIndex picks the sequence track the clips land on; earlier
// tracks are emitted empty so the video layer below stays free.
func WriteXMEML(items []Item, fpsNum, fpsDen int, dims Dims, trackIndex int, outDir, outPath string) error {
	isNTSC := "FALSE"
	if fpsDen != 1 {
		isNTSC = "TRUE"
	}
	rate := xmemlRate{
		Timebase: int(math.Round(float64(fpsNum) / float64(fpsDen))),
		NTSC:     isNTSC,
	}

	absDir, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	seq := xmemlSequence{
		ID:       "CaptionTimeline",
		Name:     "CaptionTimeline",
		Rate:     rate,
		Duration: sequenceDuration(items),
		Timecode: xmemlTimecode{
			Rate:          rate,
			String:        "00:00:00:00",
			Frame:         0,
			DisplayFormat: "NDF",
		},
		Media: xmemlMedia{
			Video: xmemlVideo{
				Format: xmemlFormat{
					SampleCharacteristics: xmemlSampleChars{
						Width:            dims.Width,
						Height:           dims.Height,
						Anamorphic:       "FALSE",
						PixelAspectRatio: "square",
						FieldDominance:   "none",
					},
				},
			},
		},
	}

	var track xmemlTrack
	for i, item := range items {
		duration := item.EndFrame - item.StartFrame
		fileURL := url.URL{
			Scheme: "file",
			Path:   filepath.ToSlash(filepath.Join(absDir, item.File)),
		}

		track.ClipItems = append(track.ClipItems, xmemlClipItem{
			ID:       fmt.Sprintf("cap_%04d", i+1),
			Name:     item.File,
			Rate:     rate,
			Duration: duration,
			Start:    item.StartFrame,
			End:      item.EndFrame,
			In:       0,
			Out:      duration,
			SourceTrack: xmemlSourceTrack{
				MediaType:  "video",
				TrackIndex: 1,
			},
			Alpha: "straight",
			File: xmemlFile{
				ID:      fmt.Sprintf("file-%04d", i+1),
				Name:    item.File,
				PathURL: fileURL.String(),
				Rate:    rate,
				Media: xmemlFileMedia{
					Video: xmemlFileVideo{
						Duration: duration,
						SampleCharacteristics: xmemlSampleChars{
							Width:            dims.Width,
							Height:           dims.Height,
							PixelAspectRatio: "square",
						},
					},
				},
			},
		})
	}

	if trackIndex < 1 {
		trackIndex = 1
	}
	seq.Media.Video.Tracks = make([]xmemlTrack, trackIndex)
	seq.Media.Video.Tracks[trackIndex-1] = track

	doc := xmemlDoc{Version: "5", Sequence: seq}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize XMEML: %w", err)
	}

	out := []byte(xml.Header)
	out = append(out, data...)
	out = append(out, '\n')
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write XMEML: %w", err)
	}
	return nil
}
