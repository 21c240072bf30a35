package rule

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Rule is a loaded rule definition. Windows are kept as specs and turned into
// concrete windows per evaluation by Resolve.
type Rule struct {
	Name         string
	TriggerEvent string // evaluation runs when an event of this type arrives
	Profile      []ProfileCondition
	Counts       []ConditionSpec
	Sequence     SequenceSpec
	Fingerprint  string // SHA-256 of the raw YAML file; computed at load time
}

// ConditionSpec is a count-kind condition before window resolution.
type ConditionSpec struct {
	ID         string
	CacheID    string
	EventType  string
	Attributes map[string]string
	Threshold  int64
	Window     WindowSpec
}

// SequenceSpec is an ordered list of steps sharing one window.
type SequenceSpec struct {
	Window WindowSpec
	Steps  []ConditionSpec
}

// Resolve builds the working RuleSpec for an evaluation at now.
func (r Rule) Resolve(now time.Time) *RuleSpec {
	spec := &RuleSpec{
		RuleName:    r.Name,
		Fingerprint: r.Fingerprint,
		Profile:     append([]ProfileCondition(nil), r.Profile...),
		Counts:      make([]AtomicCondition, 0, len(r.Counts)),
		Sequence:    make([]AtomicCondition, 0, len(r.Sequence.Steps)),
	}
	for _, c := range r.Counts {
		spec.Counts = append(spec.Counts, c.resolve(c.Window.Resolve(now)))
	}
	seqWindow := r.Sequence.Window.Resolve(now)
	for _, s := range r.Sequence.Steps {
		spec.Sequence = append(spec.Sequence, s.resolve(seqWindow))
	}
	return spec
}

func (c ConditionSpec) resolve(w Window) AtomicCondition {
	return AtomicCondition{
		ID:         c.ID,
		CacheID:    c.CacheID,
		EventType:  c.EventType,
		Attributes: c.Attributes,
		Threshold:  c.Threshold,
		Window:     w,
	}
}

// rawRule is the on-disk YAML shape.
type rawRule struct {
	Name         string             `yaml:"name"`
	TriggerEvent string             `yaml:"trigger_event"`
	Profile      []ProfileCondition `yaml:"profile"`
	Counts       []rawCondition     `yaml:"counts"`
	Sequence     rawSequence        `yaml:"sequence"`
}

type rawCondition struct {
	EventType  string            `yaml:"event_type"`
	Attributes map[string]string `yaml:"attributes"`
	Threshold  int64             `yaml:"threshold"`
	Lookback   string            `yaml:"lookback"`
	Start      string            `yaml:"start"`
	End        string            `yaml:"end"`
}

type rawSequence struct {
	Lookback string         `yaml:"lookback"`
	Start    string         `yaml:"start"`
	End      string         `yaml:"end"`
	Steps    []rawCondition `yaml:"steps"`
}

// ErrRuleNotFound is returned by Repository.Get for an unknown rule name.
var ErrRuleNotFound = errors.New("rule not found")

// Repository defines the interface for loading rules.
type Repository interface {
	// Get returns the rule with the given name, or an error if not found.
	Get(ctx context.Context, name string) (*Rule, error)

	// List returns all loaded rules, optionally filtered by trigger event type.
	List(ctx context.Context, triggerEvent string) ([]Rule, error)

	// GetRules returns all rules as a slice.
	GetRules() []Rule
}

// FileSystemRepository loads rules from *.yaml files in a directory.
// Each file contains exactly one rule at the top level. Rules are loaded once at
// startup and cached in memory.
type FileSystemRepository struct {
	dir   string
	rules map[string]Rule // keyed by Name
}

// NewFileSystemRepository creates a new repository and eagerly loads all rules
// from dir. Returns an error if any rule file is malformed or invalid.
func NewFileSystemRepository(dir string) (*FileSystemRepository, error) {
	repo := &FileSystemRepository{
		dir:   dir,
		rules: make(map[string]Rule),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no rules directory: zero rules configured
	}
	if err != nil {
		return fmt.Errorf("rule dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rule path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading rule dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading rule file %s: %w", path, err)
		}

		rule, skip, err := Parse(data)
		if err != nil {
			return fmt.Errorf("rule file %s: %w", path, err)
		}
		if skip {
			continue // empty / comment-only file
		}

		if _, exists := r.rules[rule.Name]; exists {
			return fmt.Errorf("rule %q: duplicate rule name (check multiple YAML files)", rule.Name)
		}
		r.rules[rule.Name] = rule
	}
	return nil
}

// Parse decodes and validates one rule document. skip is true for documents
// without a name (empty or comment-only files).
func Parse(data []byte) (rule Rule, skip bool, err error) {
	var raw rawRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Rule{}, false, fmt.Errorf("parsing rule: %w", err)
	}
	if raw.Name == "" {
		return Rule{}, true, nil
	}
	if raw.TriggerEvent == "" {
		return Rule{}, false, fmt.Errorf("rule %q: trigger_event must not be empty", raw.Name)
	}

	for i, p := range raw.Profile {
		if p.Tag == "" {
			return Rule{}, false, fmt.Errorf("rule %q: profile condition %d: tag must not be empty", raw.Name, i+1)
		}
		if p.Op == "" {
			raw.Profile[i].Op = OpEq
		} else if !ValidProfileOperator(p.Op) {
			return Rule{}, false, fmt.Errorf("rule %q: unsupported profile operator %q", raw.Name, p.Op)
		}
	}

	rule = Rule{
		Name:         raw.Name,
		TriggerEvent: raw.TriggerEvent,
		Profile:      raw.Profile,
		Fingerprint:  fmt.Sprintf("%x", sha256.Sum256(data)),
	}

	for i, c := range raw.Counts {
		cond, err := parseCondition(c)
		if err != nil {
			return Rule{}, false, fmt.Errorf("rule %q: count condition %d: %w", raw.Name, i+1, err)
		}
		if c.Threshold < 0 {
			return Rule{}, false, fmt.Errorf("rule %q: count condition %d: threshold must be >= 0", raw.Name, i+1)
		}
		cond.Window, err = parseWindow(c.Lookback, c.Start, c.End)
		if err != nil {
			return Rule{}, false, fmt.Errorf("rule %q: count condition %d: %w", raw.Name, i+1, err)
		}
		cond.CacheID = CacheID(raw.Name, cond.ID, cond.Window)
		rule.Counts = append(rule.Counts, cond)
	}

	if len(raw.Sequence.Steps) > 0 {
		rule.Sequence.Window, err = parseWindow(raw.Sequence.Lookback, raw.Sequence.Start, raw.Sequence.End)
		if err != nil {
			return Rule{}, false, fmt.Errorf("rule %q: sequence: %w", raw.Name, err)
		}
		for i, s := range raw.Sequence.Steps {
			step, err := parseCondition(s)
			if err != nil {
				return Rule{}, false, fmt.Errorf("rule %q: sequence step %d: %w", raw.Name, i+1, err)
			}
			step.CacheID = CacheID(raw.Name, step.ID, rule.Sequence.Window)
			rule.Sequence.Steps = append(rule.Sequence.Steps, step)
		}
	}

	return rule, false, nil
}

func parseCondition(c rawCondition) (ConditionSpec, error) {
	if c.EventType == "" {
		return ConditionSpec{}, fmt.Errorf("event_type must not be empty")
	}
	return ConditionSpec{
		ID:         ConditionID(c.EventType, c.Attributes),
		EventType:  c.EventType,
		Attributes: c.Attributes,
		Threshold:  c.Threshold,
	}, nil
}

// Get returns the rule with the given name, or an error if not found.
func (r *FileSystemRepository) Get(_ context.Context, name string) (*Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	return &rule, nil
}

// List returns all loaded rules, optionally filtered by trigger event type.
func (r *FileSystemRepository) List(_ context.Context, triggerEvent string) ([]Rule, error) {
	var out []Rule
	for _, rule := range r.rules {
		if triggerEvent != "" && rule.TriggerEvent != triggerEvent {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

// GetRules returns all rules as a slice.
func (r *FileSystemRepository) GetRules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	return rules
}
