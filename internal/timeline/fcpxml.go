package timeline

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
)

// FCPXML 1.6 document targeting drag-and-drop import into Final Cut
// Pro X / Premiere Pro: one asset per caption image, one video clip
// per asset on the sequence spine.

type fcpxmlDoc struct {
	XMLName   xml.Name     `xml:"fcpxml"`
	Version   string       `xml:"version,attr"`
	Resources fcpResources `xml:"resources"`
	Library   fcpLibrary   `xml:"library"`
}

type fcpResources struct {
	Formats []fcpFormat `xml:"format"`
	Assets  []fcpAsset  `xml:"asset"`
}

type fcpFormat struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         int    `xml:"width,attr"`
	Height        int    `xml:"height,attr"`
}

type fcpAsset struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	Src      string `xml:"src,attr"`
	HasVideo string `xml:"hasVideo,attr"`
	Format   string `xml:"format,attr"`
}

type fcpLibrary struct {
	Event fcpEvent `xml:"event"`
}

type fcpEvent struct {
	Name    string     `xml:"name,attr"`
	Project fcpProject `xml:"project"`
}

type fcpProject struct {
	Name     string      `xml:"name,attr"`
	Sequence fcpSequence `xml:"sequence"`
}

type fcpSequence struct {
	Format   string   `xml:"format,attr"`
	Duration string   `xml:"duration,attr"`
	Spine    fcpSpine `xml:"spine"`
}

type fcpSpine struct {
	Gap    *fcpGap    `xml:"gap,omitempty"`
	Videos []fcpVideo `xml:"video"`
}

type fcpGap struct {
	Offset   string `xml:"offset,attr"`
	Duration string `xml:"duration,attr"`
}

type fcpVideo struct {
	Name      string        `xml:"name,attr"`
	Offset    string        `xml:"offset,attr"`
	Ref       string        `xml:"ref,attr"`
	Duration  string        `xml:"duration,attr"`
	Transform *fcpTransform `xml:"transform,omitempty"`
}

type fcpTransform struct {
	Position string `xml:"position,attr"`
}

// WriteFCPXML serializes the caption items as an FCPXML 1.6 timeline.
// The frame rate is declared as an exact frameDuration pair and every
// clip time is a rational seconds value.
func WriteFCPXML(items []Item, fpsNum, fpsDen int, dims Dims, outPath string) error {
	fps := int(math.Round(float64(fpsNum) / float64(fpsDen)))
	doc := fcpxmlDoc{
		Version: "1.6",
		Resources: fcpResources{
			Formats: []fcpFormat{{
				ID:            "r1",
				Name:          fmt.Sprintf("FFVideoFormat%dp%d", dims.Height, fps),
				FrameDuration: fmt.Sprintf("%d/%ds", fpsDen, fpsNum),
				Width:         dims.Width,
				Height:        dims.Height,
			}},
		},
		Library: fcpLibrary{
			Event: fcpEvent{
				Name: "Caption Import",
				Project: fcpProject{
					Name: "Caption Sequence",
				},
			},
		},
	}

	total := sequenceDuration(items)
	seq := fcpSequence{
		Format:   "r1",
		Duration: rationalSeconds(total, fpsNum, fpsDen),
	}
	if total > 0 {
		seq.Spine.Gap = &fcpGap{
			Offset:   "0s",
			Duration: rationalSeconds(total, fpsNum, fpsDen),
		}
	}

	for i, item := range items {
		ref := fmt.Sprintf("r%d", i+2)
		doc.Resources.Assets = append(doc.Resources.Assets, fcpAsset{
			ID:       ref,
			Name:     item.File,
			Src:      "file://./" + item.File,
			HasVideo: "1",
			Format:   "r1",
		})

		clip := fcpVideo{
			Name:     item.File,
			Offset:   rationalSeconds(item.StartFrame, fpsNum, fpsDen),
			Ref:      ref,
			Duration: rationalSeconds(item.EndFrame-item.StartFrame, fpsNum, fpsDen),
		}
		if item.OffsetX != 0 || item.OffsetY != 0 {
			clip.Transform = &fcpTransform{
				Position: fmt.Sprintf("%d %d", item.OffsetX, -item.OffsetY),
			}
		}
		seq.Spine.Videos = append(seq.Spine.Videos, clip)
	}
	doc.Library.Event.Project.Sequence = seq

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize FCPXML: %w", err)
	}

	out := []byte(xml.Header + "<!DOCTYPE fcpxml>\n")
	out = append(out, data...)
	out = append(out, '\n')
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write FCPXML: %w", err)
	}
	return nil
}
