package storage

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stowage-io/stowage/internal/maritime"
)

var (
	// ErrInvalidRule indicates a segregation rule violates validation: empty
	// class names, a negative separation, or a rule that neither prohibits nor
	// separates.
	ErrInvalidRule = errors.New("segregation rule must name two classes and either prohibit or require separation")
	// ErrDuplicatePair indicates the same unordered class pair appears twice.
	ErrDuplicatePair = errors.New("segregation rules contain a duplicate class pair")
)

// SegregationRule is the storable form of one pairwise hazard-class rule.
type SegregationRule struct {
	ClassA        string  `yaml:"class_a" json:"classA"`
	ClassB        string  `yaml:"class_b" json:"classB"`
	Prohibited    bool    `yaml:"prohibited" json:"prohibited"`
	MinSeparation float64 `yaml:"min_separation" json:"minSeparation,omitempty"`
}

// defaultSegregationRules follow common maritime practice: explosives and
// oxidizers never ride with flammables, corrosives keep their distance from
// toxics.
var defaultSegregationRules = []SegregationRule{
	{ClassA: "1", ClassB: "3", Prohibited: true},
	{ClassA: "3", ClassB: "5.1", Prohibited: true},
	{ClassA: "6.1", ClassB: "8", MinSeparation: 3},
}

// Store provides access to the segregation rules used when building maritime
// containers.
type Store interface {
	GetRules() ([]SegregationRule, error)
	SetRules(rules []SegregationRule) error
	Table() (*maritime.SegregationTable, error)
}

// MemoryStore keeps segregation rules in memory and guards access with a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	rules []SegregationRule
}

// NewMemoryStore initialises the store with a copy of the default rules.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rules: cloneAndSort(defaultSegregationRules)}
}

// DefaultRules returns a copy of the default segregation rules.
func DefaultRules() []SegregationRule {
	return cloneAndSort(defaultSegregationRules)
}

// GetRules returns a defensive copy of the currently configured rules.
func (s *MemoryStore) GetRules() ([]SegregationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAndSort(s.rules), nil
}

// SetRules validates, normalises, and stores the provided rules. An empty
// slice is valid and removes all segregation constraints.
func (s *MemoryStore) SetRules(rules []SegregationRule) error {
	normalized, err := normalizeRules(rules)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rules = normalized
	s.mu.Unlock()

	return nil
}

// Table builds a maritime segregation table from the current rules.
func (s *MemoryStore) Table() (*maritime.SegregationTable, error) {
	rules, err := s.GetRules()
	if err != nil {
		return nil, err
	}
	return BuildTable(rules)
}

// BuildTable converts storable rules into a maritime segregation table.
func BuildTable(rules []SegregationRule) (*maritime.SegregationTable, error) {
	table := maritime.NewSegregationTable()
	for _, rule := range rules {
		var err error
		if rule.Prohibited {
			err = table.Prohibit(rule.ClassA, rule.ClassB)
		} else {
			err = table.RequireSeparation(rule.ClassA, rule.ClassB, rule.MinSeparation)
		}
		if err != nil {
			return nil, fmt.Errorf("rule %s/%s: %w", rule.ClassA, rule.ClassB, err)
		}
	}
	return table, nil
}

func cloneAndSort(src []SegregationRule) []SegregationRule {
	out := make([]SegregationRule, len(src))
	copy(out, src)
	for i := range out {
		if out[i].ClassA > out[i].ClassB {
			out[i].ClassA, out[i].ClassB = out[i].ClassB, out[i].ClassA
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassA != out[j].ClassA {
			return out[i].ClassA < out[j].ClassA
		}
		return out[i].ClassB < out[j].ClassB
	})
	return out
}

func normalizeRules(rules []SegregationRule) ([]SegregationRule, error) {
	for _, rule := range rules {
		if rule.ClassA == "" || rule.ClassB == "" || rule.MinSeparation < 0 {
			return nil, fmt.Errorf("rule %q/%q: %w", rule.ClassA, rule.ClassB, ErrInvalidRule)
		}
		if !rule.Prohibited && rule.MinSeparation == 0 {
			return nil, fmt.Errorf("rule %q/%q: %w", rule.ClassA, rule.ClassB, ErrInvalidRule)
		}
	}

	normalized := cloneAndSort(rules)
	for i := 1; i < len(normalized); i++ {
		if normalized[i].ClassA == normalized[i-1].ClassA && normalized[i].ClassB == normalized[i-1].ClassB {
			return nil, fmt.Errorf("pair %s/%s: %w", normalized[i].ClassA, normalized[i].ClassB, ErrDuplicatePair)
		}
	}
	return normalized, nil
}
