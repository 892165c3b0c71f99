package subtitle

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var timestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

// ParseSRT reads an SRT file and returns its caption blocks in file
// order. Blocks are passed through as-is: overlapping or out-of-order
// intervals are not normalized.
func ParseSRT(path string) ([]Caption, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "failed to open SRT file", Err: err}
	}
	defer file.Close()

	var captions []Caption
	scanner := bufio.NewScanner(file)

	var current *Caption
	var textLines []string
	lineNum := 0
	sawTimestamp := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Lines = textLines
			captions = append(captions, *current)
		}
		current = nil
		textLines = nil
		sawTimestamp = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				current = &Caption{Index: index}
				continue
			}
			return nil, &ParseError{Path: path, Msg: "expected block index at line " + strconv.Itoa(lineNum)}
		}

		if !sawTimestamp {
			matches := timestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				return nil, &ParseError{Path: path, Msg: "expected timestamp range at line " + strconv.Itoa(lineNum)}
			}
			current.StartMS = srtTimestampMS(matches[1], matches[2], matches[3], matches[4])
			current.EndMS = srtTimestampMS(matches[5], matches[6], matches[7], matches[8])
			sawTimestamp = true
			continue
		}

		textLines = append(textLines, strings.Trim(line, "\n"))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Msg: "error reading SRT file", Err: err}
	}
	if len(captions) == 0 {
		return nil, &ParseError{Path: path, Msg: "no caption blocks found"}
	}

	return captions, nil
}

// components are pre-validated by the timestamp regexp
func srtTimestampMS(hours, minutes, seconds, millis string) int64 {
	h, _ := strconv.ParseInt(hours, 10, 64)
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	ms, _ := strconv.ParseInt(millis, 10, 64)
	return (h*3600+m*60+s)*1000 + ms
}
