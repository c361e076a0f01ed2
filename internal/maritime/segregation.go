package maritime

import (
	"errors"
	"fmt"
)

// ErrInvalidRule is returned when a segregation rule names an empty class or a
// negative separation distance.
var ErrInvalidRule = errors.New("segregation rule must name two classes and a non-negative separation")

// classPair keys the segregation table by an unordered pair of hazard classes.
type classPair struct {
	low, high string
}

func pairOf(a, b string) classPair {
	if a > b {
		a, b = b, a
	}
	return classPair{low: a, high: b}
}

// Rule constrains how two hazard classes may share a container: either an
// outright prohibition, or a minimum horizontal separation distance between
// their footprints.
type Rule struct {
	Prohibited    bool
	MinSeparation float64
}

// SegregationTable holds the pairwise co-location rules for hazard classes.
// Lookups are symmetric: a rule for (a, b) also applies to (b, a).
type SegregationTable struct {
	rules map[classPair]Rule
}

// NewSegregationTable returns an empty table; every class pair is compatible
// until a rule is added.
func NewSegregationTable() *SegregationTable {
	return &SegregationTable{rules: make(map[classPair]Rule)}
}

// Prohibit forbids the two classes from sharing a container.
func (t *SegregationTable) Prohibit(a, b string) error {
	if a == "" || b == "" {
		return fmt.Errorf("prohibit %q/%q: %w", a, b, ErrInvalidRule)
	}
	t.rules[pairOf(a, b)] = Rule{Prohibited: true}
	return nil
}

// RequireSeparation allows the two classes to share a container only when
// their footprints keep at least the given horizontal distance apart.
func (t *SegregationTable) RequireSeparation(a, b string, distance float64) error {
	if a == "" || b == "" || distance < 0 {
		return fmt.Errorf("separate %q/%q: %w", a, b, ErrInvalidRule)
	}
	t.rules[pairOf(a, b)] = Rule{MinSeparation: distance}
	return nil
}

// Lookup returns the rule for the unordered pair, if any. Unclassified cargo
// (empty class) never matches a rule.
func (t *SegregationTable) Lookup(a, b string) (Rule, bool) {
	if a == "" || b == "" {
		return Rule{}, false
	}
	rule, ok := t.rules[pairOf(a, b)]
	return rule, ok
}

// Len returns the number of configured rules.
func (t *SegregationTable) Len() int {
	return len(t.rules)
}
