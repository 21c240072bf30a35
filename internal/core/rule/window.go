package rule

import (
	"errors"
	"fmt"
	"time"
)

// SplitLag is how far behind the current hour boundary the hot store is
// assumed to be authoritative.
const SplitLag = 2 * time.Hour

// ErrInvalidWindow marks a condition window whose start is after its end.
var ErrInvalidWindow = errors.New("invalid condition window")

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate rejects windows with Start after End. Empty windows are legal.
func (w Window) Validate() error {
	if w.Start.After(w.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow,
			w.Start.UTC().Format(time.RFC3339Nano), w.End.UTC().Format(time.RFC3339Nano))
	}
	return nil
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Covers reports whether o lies entirely inside w.
func (w Window) Covers(o Window) bool {
	return !o.Start.Before(w.Start) && !o.End.After(w.End)
}

// SplitPoint returns the hot/cold boundary for an evaluation at now:
// the start of the current hour, shifted back by SplitLag.
// It is a pure function of now; callers pass the evaluation time explicitly.
func SplitPoint(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(-SplitLag)
}

// WindowSpec is the rule-file form of a window: either a lookback relative to
// the evaluation time, or absolute bounds.
type WindowSpec struct {
	Size  time.Duration
	Start time.Time
	End   time.Time
}

// Resolve turns the window size into a concrete window for an evaluation at now.
func (s WindowSpec) Resolve(now time.Time) Window {
	if s.Size > 0 {
		return Window{Start: now.Add(-s.Size), End: now}
	}
	return Window{Start: s.Start, End: s.End}
}

// String is a stable rendering of the window: "lookback=24h0m0s" or
// "abs=<start>/<end>" in RFC3339.
func (s WindowSpec) String() string {
	if s.Size > 0 {
		return "lookback=" + s.Size.String()
	}
	return "abs=" + s.Start.UTC().Format(time.RFC3339Nano) + "/" + s.End.UTC().Format(time.RFC3339Nano)
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "10s", "1m", "1h") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window size must not be empty")
	}

	// Handle "d" suffix (days), not supported by time.ParseDuration.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// parseWindow builds a WindowSpec from the rule-file fields.
// Exactly one of lookback or start/end must be set.
func parseWindow(lookback, start, end string) (WindowSpec, error) {
	if lookback != "" {
		if start != "" || end != "" {
			return WindowSpec{}, fmt.Errorf("lookback and start/end are mutually exclusive")
		}
		return ParseWindowSize(lookback)
	}
	if start == "" || end == "" {
		return WindowSpec{}, fmt.Errorf("either lookback or both start and end are required")
	}

	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid start %q: %w", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid end %q: %w", end, err)
	}
	spec := WindowSpec{Start: s.UTC(), End: e.UTC()}
	if err := (Window{Start: spec.Start, End: spec.End}).Validate(); err != nil {
		return WindowSpec{}, err
	}
	return spec, nil
}
