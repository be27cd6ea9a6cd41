package main

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// OptionPair is one answer choice: its canonical letter and display text.
type OptionPair struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// IDSet is a set of question ids.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// drawIDs picks count ids uniformly without replacement. The order of the
// result is random as well (partial Fisher-Yates over a copy of ids).
func drawIDs(r *rand.Rand, ids []int64, count int) []int64 {
	out := append([]int64(nil), ids...)
	if count > len(out) {
		count = len(out)
	}
	if count < 0 {
		count = 0
	}
	for i := 0; i < count; i++ {
		j := i + r.Intn(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:count]
}

// canonicalOptions lists the four options in A/B/C/D order.
func canonicalOptions(q Question) []OptionPair {
	return []OptionPair{
		{Letter: "A", Text: q.OptionA},
		{Letter: "B", Text: q.OptionB},
		{Letter: "C", Text: q.OptionC},
		{Letter: "D", Text: q.OptionD},
	}
}

func shuffleOptions(r *rand.Rand, opts []OptionPair) []OptionPair {
	out := append([]OptionPair(nil), opts...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
