package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultCeiling is the total score above which Decay scales the ledger.
	DefaultCeiling = 9000.0

	// DecayFactor is applied to every entry once the ceiling is crossed.
	DecayFactor = 0.99

	separator = "|"
)

var (
	// ErrMalformedRecord is matched by every *MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed ledger record")

	// ErrIO marks read, write and lock failures on the backing files.
	ErrIO = errors.New("ledger io")

	// ErrUnstorablePath is returned for paths the line format cannot hold.
	ErrUnstorablePath = errors.New("path cannot be stored in the ledger")
)

// MalformedRecordError reports the line that failed to parse.
type MalformedRecordError struct {
	Line    int
	Content string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed ledger record on line %d: %q", e.Line, e.Content)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Entry is the persisted usage weight of one directory.
type Entry struct {
	Score float64
}

// PathEntry pairs a ledger key with its entry.
type PathEntry struct {
	Path string
	Entry
}

// Ledger maps canonical absolute directory paths to their frecency entries.
// It is loaded once per operation and is not safe for concurrent use.
type Ledger struct {
	entries map[string]*Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]*Entry)}
}

// Load parses `<path>|<score>` records, one per line. A single bad line
// fails the whole load.
func Load(r io.Reader) (*Ledger, error) {
	l := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if line == "" {
			continue
		}
		path, score, err := parseRecord(line)
		if err != nil {
			return nil, &MalformedRecordError{Line: n, Content: line}
		}
		l.entries[path] = &Entry{Score: score}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan ledger: %v", ErrIO, err)
	}
	return l, nil
}

func parseRecord(line string) (string, float64, error) {
	i := strings.LastIndex(line, separator)
	if i < 0 {
		return "", 0, errors.New("missing separator")
	}
	score, err := strconv.ParseFloat(line[i+1:], 64)
	if err != nil {
		return "", 0, err
	}
	if score < 0 || math.IsNaN(score) || math.IsInf(score, 0) {
		return "", 0, errors.New("score out of range")
	}
	return line[:i], score, nil
}

// CheckPath rejects paths that would not survive a Persist/Load round trip:
// a newline splits the record in two.
func CheckPath(path string) error {
	if strings.Contains(path, "\n") {
		return fmt.Errorf("%w: %q contains a newline", ErrUnstorablePath, path)
	}
	return nil
}

// Persist writes every entry as a `<path>|<score>` line, sorted by path.
// Nothing is written when any path fails CheckPath.
func (l *Ledger) Persist(w io.Writer) error {
	paths := l.paths()
	for _, path := range paths {
		if err := CheckPath(path); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	for _, path := range paths {
		score := strconv.FormatFloat(l.entries[path].Score, 'g', -1, 64)
		if _, err := bw.WriteString(path + separator + score + "\n"); err != nil {
			return fmt.Errorf("%w: write record: %v", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush ledger: %v", ErrIO, err)
	}
	return nil
}

// RecordVisit adds exactly one point to path, creating the entry if needed.
func (l *Ledger) RecordVisit(path string) {
	l.Add(path, 1)
}

// Add increases the score of path by weight. Used by importers to seed
// entries with more than one visit at once.
func (l *Ledger) Add(path string, weight float64) {
	e, ok := l.entries[path]
	if !ok {
		e = &Entry{}
		l.entries[path] = e
	}
	e.Score += weight
}

// Decay scales every score by DecayFactor when the total exceeds ceiling.
// A ceiling <= 0 means DefaultCeiling. Returns true when scores changed.
func (l *Ledger) Decay(ceiling float64) bool {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	total := l.Total()
	if total <= ceiling {
		return false
	}
	for _, e := range l.entries {
		e.Score *= DecayFactor
	}
	slog.Debug("ledger decayed", "total", total, "ceiling", ceiling, "entries", len(l.entries))
	return true
}

// Total returns the sum of all scores.
func (l *Ledger) Total() float64 {
	var total float64
	for _, e := range l.entries {
		total += e.Score
	}
	return total
}

// Score returns the score of path, or 0 if it is not tracked.
func (l *Ledger) Score(path string) float64 {
	if e, ok := l.entries[path]; ok {
		return e.Score
	}
	return 0
}

// Len returns the number of tracked paths.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a snapshot of all entries, highest score first.
func (l *Ledger) Entries() []PathEntry {
	out := make([]PathEntry, 0, len(l.entries))
	for path, e := range l.entries {
		out = append(out, PathEntry{Path: path, Entry: *e})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func (l *Ledger) paths() []string {
	paths := make([]string, 0, len(l.entries))
	for path := range l.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
