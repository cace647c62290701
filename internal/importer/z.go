package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadZFile reads a z / zsh-z datafile, usually ~/.z.
func ReadZFile(path string) ([]Visit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open z datafile: %w", err)
	}
	defer f.Close()
	return ReadZ(f)
}

// ReadZ parses `path|rank|time` lines. The rank becomes the weight.
// Malformed lines are skipped, as z itself does.
func ReadZ(r io.Reader) ([]Visit, error) {
	var visits []Visit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		v, ok := parseZLine(scanner.Text())
		if !ok {
			continue
		}
		visits = append(visits, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan z datafile: %w", err)
	}
	return visits, nil
}

func parseZLine(line string) (Visit, bool) {
	line = strings.TrimSpace(line)
	// Split from the right: the path itself may contain '|'.
	last := strings.LastIndex(line, "|")
	if last < 0 {
		return Visit{}, false
	}
	mid := strings.LastIndex(line[:last], "|")
	if mid <= 0 {
		return Visit{}, false
	}
	if _, err := strconv.ParseInt(line[last+1:], 10, 64); err != nil {
		return Visit{}, false
	}
	rank, err := strconv.ParseFloat(line[mid+1:last], 64)
	if err != nil {
		return Visit{}, false
	}
	return Visit{Path: line[:mid], Weight: rank}, true
}
