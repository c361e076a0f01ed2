package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestNewMemoryStoreReturnsDefaultRules(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	got, err := store.GetRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultRules()
	if len(got) != len(want) {
		t.Fatalf("expected %d default rules, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rule %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	// ensure mutation safety
	got[0].ClassA = "mutated"
	again, err := store.GetRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again[0].ClassA == "mutated" {
		t.Fatalf("expected defensive copy")
	}
}

func TestSetRulesNormalizesPairOrder(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	err := store.SetRules([]SegregationRule{
		{ClassA: "8", ClassB: "3", Prohibited: true},
		{ClassA: "2.1", ClassB: "1", MinSeparation: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []SegregationRule{
		{ClassA: "1", ClassB: "2.1", MinSeparation: 2},
		{ClassA: "3", ClassB: "8", Prohibited: true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rule %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSetRulesRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rules   []SegregationRule
		wantErr error
	}{
		{
			name:    "EmptyClass",
			rules:   []SegregationRule{{ClassA: "", ClassB: "3", Prohibited: true}},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "NegativeSeparation",
			rules:   []SegregationRule{{ClassA: "3", ClassB: "8", MinSeparation: -1}},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "NoEffect",
			rules:   []SegregationRule{{ClassA: "3", ClassB: "8"}},
			wantErr: ErrInvalidRule,
		},
		{
			name: "DuplicatePair",
			rules: []SegregationRule{
				{ClassA: "3", ClassB: "8", Prohibited: true},
				{ClassA: "8", ClassB: "3", MinSeparation: 2},
			},
			wantErr: ErrDuplicatePair,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore()
			if err := store.SetRules(tc.rules); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSetRulesEmptyClearsAll(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.SetRules(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.GetRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rules, got %v", got)
	}
}

func TestTableReflectsRules(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.SetRules([]SegregationRule{
		{ClassA: "3", ClassB: "8", Prohibited: true},
		{ClassA: "6.1", ClassB: "8", MinSeparation: 4},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table, err := store.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rule, ok := table.Lookup("8", "3")
	if !ok || !rule.Prohibited {
		t.Fatalf("expected prohibition, got %+v ok=%v", rule, ok)
	}
	rule, ok = table.Lookup("8", "6.1")
	if !ok || rule.MinSeparation != 4 {
		t.Fatalf("expected separation 4, got %+v ok=%v", rule, ok)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			rules := []SegregationRule{
				{ClassA: "3", ClassB: fmt.Sprintf("8.%d", offset), Prohibited: true},
			}
			if err := store.SetRules(rules); err != nil {
				t.Errorf("SetRules failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.GetRules(); err != nil {
				t.Errorf("GetRules failed: %v", err)
			}
		}()
	}

	wg.Wait()

	if _, err := store.GetRules(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
