package main

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestDrawIDs(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "subset", count: 3, want: 3},
		{name: "exact", count: 8, want: 8},
		{name: "more than available", count: 20, want: 8},
		{name: "zero", count: 0, want: 0},
		{name: "negative", count: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drawIDs(rand.New(rand.NewSource(1)), ids, tt.count)
			if len(got) != tt.want {
				t.Fatalf("drawIDs() len = %d, want %d", len(got), tt.want)
			}
			seen := map[int64]bool{}
			for _, id := range got {
				if seen[id] {
					t.Fatalf("duplicate id %d in %v", id, got)
				}
				seen[id] = true
				if id < 1 || id > 8 {
					t.Fatalf("id %d not from input", id)
				}
			}
		})
	}
}

func TestDrawIDsDoesNotMutateInput(t *testing.T) {
	ids := []int64{1, 2, 3, 4}
	_ = drawIDs(rand.New(rand.NewSource(7)), ids, 4)
	if !reflect.DeepEqual(ids, []int64{1, 2, 3, 4}) {
		t.Fatalf("input mutated: %v", ids)
	}
}

func TestDrawIDsSeeded(t *testing.T) {
	ids := []int64{10, 20, 30, 40, 50}
	a := drawIDs(rand.New(rand.NewSource(42)), ids, 3)
	b := drawIDs(rand.New(rand.NewSource(42)), ids, 3)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
}

func TestDrawIDsOrderVaries(t *testing.T) {
	// the full draw must not always come back sorted
	ids := []int64{1, 2, 3, 4, 5, 6}
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		got := drawIDs(r, ids, len(ids))
		if !sort.SliceIsSorted(got, func(a, b int) bool { return got[a] < got[b] }) {
			return
		}
	}
	t.Fatal("50 full draws all came back in input order")
}

func TestShuffleOptionsIsPermutation(t *testing.T) {
	q := Question{OptionA: "one", OptionB: "two", OptionC: "three", OptionD: "four"}
	canon := canonicalOptions(q)
	r := rand.New(rand.NewSource(5))
	orders := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := shuffleOptions(r, canon)
		if len(got) != 4 {
			t.Fatalf("len = %d", len(got))
		}
		byLetter := map[string]string{}
		key := ""
		for _, o := range got {
			byLetter[o.Letter] = o.Text
			key += o.Letter
		}
		for _, o := range canon {
			if byLetter[o.Letter] != o.Text {
				t.Fatalf("pair %s=%q lost in %v", o.Letter, o.Text, got)
			}
		}
		orders[key] = true
	}
	if len(orders) < 12 {
		t.Fatalf("only %d distinct orders out of 24 seen", len(orders))
	}
	if canon[0].Letter != "A" || canon[3].Letter != "D" {
		t.Fatalf("canonical slice mutated: %v", canon)
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.75, 0.75},
		{-0.25, -0.25},
		{1.0 / 3.0, 0.33},
		{2.4999, 2.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundScore(tt.in); got != tt.want {
			t.Errorf("roundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(3, 1, 2, 3)
	if len(s) != 3 {
		t.Fatalf("len = %d, want 3", len(s))
	}
	if !s.Has(2) || s.Has(4) {
		t.Fatalf("membership wrong: %v", s)
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("Sorted() = %v", got)
	}
	var empty IDSet
	if empty.Has(1) || len(empty.Sorted()) != 0 {
		t.Fatal("nil set should be empty")
	}
}
