package buffer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
)

var (
	// ErrCacheMiss means no entry exists for the key.
	ErrCacheMiss = errors.New("window cache miss")

	// ErrCorruptEntry means the stored value is not "<count>|<start>,<end>".
	// Callers treat it like a miss; the next Put overwrites the entry.
	ErrCorruptEntry = errors.New("corrupt window cache entry")

	// ErrCacheWriteFailed wraps backend write failures. The cache is best-effort:
	// callers log it and carry on.
	ErrCacheWriteFailed = errors.New("window cache write failed")
)

// Entry is a cached windowed count. Window is half-open [Start, End).
type Entry struct {
	Count  int64
	Window rule.Window
}

// Encode renders the shared text layout "<count>|<startMillis>,<endMillis>".
// Other processes read the same keys, so the layout must not change.
func (e Entry) Encode() string {
	return fmt.Sprintf("%d|%d,%d", e.Count, e.Window.Start.UnixMilli(), e.Window.End.UnixMilli())
}

// DecodeEntry parses the text layout written by Encode.
func DecodeEntry(raw string) (Entry, error) {
	countPart, rangePart, ok := strings.Cut(raw, "|")
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing '|' in %q", ErrCorruptEntry, raw)
	}
	startPart, endPart, ok := strings.Cut(rangePart, ",")
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing ',' in %q", ErrCorruptEntry, raw)
	}

	count, err := strconv.ParseInt(countPart, 10, 64)
	if err != nil || count < 0 {
		return Entry{}, fmt.Errorf("%w: bad count in %q", ErrCorruptEntry, raw)
	}
	start, err := strconv.ParseInt(startPart, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad window start in %q", ErrCorruptEntry, raw)
	}
	end, err := strconv.ParseInt(endPart, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad window end in %q", ErrCorruptEntry, raw)
	}
	if start > end {
		return Entry{}, fmt.Errorf("%w: window start after end in %q", ErrCorruptEntry, raw)
	}

	return Entry{
		Count: count,
		Window: rule.Window{
			Start: time.UnixMilli(start).UTC(),
			End:   time.UnixMilli(end).UTC(),
		},
	}, nil
}
