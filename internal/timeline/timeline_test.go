package timeline

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testItems() []Item {
	return []Item{
		{File: "cap_0001.png", StartFrame: 0, EndFrame: 30, OffsetX: 0, OffsetY: -120},
		{File: "cap_0002.png", StartFrame: 36, EndFrame: 60, OffsetX: 0, OffsetY: -120},
	}
}

func TestWriteFCPXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.fcpxml")
	dims := Dims{Width: 1920, Height: 1080}

	if err := WriteFCPXML(testItems(), 30, 1, dims, path); err != nil {
		t.Fatalf("WriteFCPXML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(data)

	// rate stays a rational pair, never a decimal
	for _, want := range []string{
		`<!DOCTYPE fcpxml>`,
		`version="1.6"`,
		`frameDuration="1/30s"`,
		`duration="60/30s"`, // sequence ends at the last item's end frame
		`offset="0/30s"`,
		`offset="36/30s"`,
		`duration="30/30s"`,
		`duration="24/30s"`,
		`name="cap_0001.png"`,
		`position="0 120"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FCPXML missing %s\n%s", want, out)
		}
	}

	var doc struct {
		Resources struct {
			Assets []struct {
				ID string `xml:"id,attr"`
			} `xml:"asset"`
		} `xml:"resources"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
	if len(doc.Resources.Assets) != 2 {
		t.Errorf("expected 2 assets, got %d", len(doc.Resources.Assets))
	}
}

func TestWriteFCPXMLNTSCRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.fcpxml")
	if err := WriteFCPXML(testItems(), 30000, 1001, Dims{Width: 1920, Height: 1080}, path); err != nil {
		t.Fatalf("WriteFCPXML failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `frameDuration="1001/30000s"`) {
		t.Errorf("NTSC frameDuration not rational: %s", data)
	}
	if strings.Contains(string(data), "29.97") {
		t.Error("decimal frame rate leaked into FCPXML")
	}
}

func TestWriteXMEML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "captions.xml")
	dims := Dims{Width: 1920, Height: 1080}

	if err := WriteXMEML(testItems(), 30, 1, dims, 1, dir, path); err != nil {
		t.Fatalf("WriteXMEML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<xmeml version="5">`,
		`<timebase>30</timebase>`,
		`<ntsc>FALSE</ntsc>`,
		`<duration>60</duration>`,
		`<start>36</start>`,
		`<end>60</end>`,
		`<alpha>straight</alpha>`,
		`<pathurl>file://`,
		`<width>1920</width>`,
		`<height>1080</height>`,
		`<displayformat>NDF</displayformat>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("XMEML missing %s\n%s", want, out)
		}
	}

	// pathurl must be absolute
	if !strings.Contains(out, filepath.ToSlash(dir)) {
		t.Errorf("pathurl not anchored at output dir %s", dir)
	}

	var doc struct {
		Sequence struct {
			Media struct {
				Video struct {
					Track struct {
						ClipItems []struct {
							In  int64 `xml:"in"`
							Out int64 `xml:"out"`
						} `xml:"clipitem"`
					} `xml:"track"`
				} `xml:"video"`
			} `xml:"media"`
		} `xml:"sequence"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
	clips := doc.Sequence.Media.Video.Track.ClipItems
	if len(clips) != 2 {
		t.Fatalf("expected 2 clipitems, got %d", len(clips))
	}
	if clips[0].In != 0 || clips[0].Out != 30 {
		t.Errorf("clip 0 in/out = %d/%d, want 0/30", clips[0].In, clips[0].Out)
	}
	if clips[1].Out != 24 {
		t.Errorf("clip 1 out = %d, want duration 24", clips[1].Out)
	}
}

func TestWriteXMEMLNTSCFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "captions.xml")

	if err := WriteXMEML(testItems(), 24000, 1001, Dims{Width: 3840, Height: 2160}, 1, dir, path); err != nil {
		t.Fatalf("WriteXMEML failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	out := string(data)

	if !strings.Contains(out, `<timebase>24</timebase>`) {
		t.Errorf("timebase not rounded to 24: %s", out)
	}
	if !strings.Contains(out, `<ntsc>TRUE</ntsc>`) {
		t.Errorf("non-integer rate not flagged NTSC: %s", out)
	}
}

func TestWriteXMEMLTrackIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "captions.xml")

	if err := WriteXMEML(testItems(), 30, 1, Dims{Width: 1920, Height: 1080}, 2, dir, path); err != nil {
		t.Fatalf("WriteXMEML failed: %v", err)
	}
	data, _ := os.ReadFile(path)

	var doc struct {
		Sequence struct {
			Media struct {
				Video struct {
					Tracks []struct {
						ClipItems []struct {
							Name string `xml:"name"`
						} `xml:"clipitem"`
					} `xml:"track"`
				} `xml:"video"`
			} `xml:"media"`
		} `xml:"sequence"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
	tracks := doc.Sequence.Media.Video.Tracks
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if len(tracks[0].ClipItems) != 0 {
		t.Errorf("track 1 should be empty, has %d clips", len(tracks[0].ClipItems))
	}
	if len(tracks[1].ClipItems) != 2 {
		t.Errorf("track 2 clips = %d, want 2", len(tracks[1].ClipItems))
	}
}

func TestSequenceDurationEmpty(t *testing.T) {
	if d := sequenceDuration(nil); d != 0 {
		t.Errorf("empty timeline duration = %d, want 0", d)
	}
}
