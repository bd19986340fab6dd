// Package sample decides which elements of a container get checked.
//
// Sampling is sound but not complete: an element which is checked and fails is always
// a real violation, but a container may pass with a violating element that was not sampled.
package sample

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cottand/sigtest/sigerr"
)

// Size caps how many elements of a container are checked. All checks every element.
type Size int

const (
	All         Size = 0
	DefaultSize Size = 100
)

// allMarker selects exhaustive checking when parsing a Size
const allMarker = "ALL"

func (s Size) String() string {
	if s <= All {
		return allMarker
	}
	return strconv.Itoa(int(s))
}

// ParseSize reads a sample size setting: empty means DefaultSize, "ALL" means All,
// and otherwise the setting must be a number which rounds to a positive integer
func ParseSize(raw string) (Size, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return DefaultSize, nil
	case strings.EqualFold(raw, allMarker):
		return All, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, sigerr.New(sigerr.NewInvalidSampleSize{Input: raw})
	}
	rounded := math.Round(f)
	if rounded < 1 || rounded > math.MaxInt32 {
		return 0, sigerr.New(sigerr.NewInvalidSampleSize{Input: raw})
	}
	return Size(rounded), nil
}

// Policy picks the elements to check. The zero Policy is exhaustive, and so is any
// Policy with a negative Size.
//
// A Policy is safe for concurrent use as long as its Source is: the global generator is
// used when Source is nil, and Seeded sources are locked.
type Policy struct {
	Size   Size
	Source rand.Source
}

// Exhaustive checks every element
var Exhaustive = Policy{Size: All}

func New(size Size) Policy {
	return Policy{Size: size}
}

// Seeded returns a Policy whose choices are reproducible for a given seed.
// When shared between goroutines, the order in which they draw decides who gets which choices.
func Seeded(size Size, seed uint64) Policy {
	return Policy{Size: size, Source: &lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}}
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (p Policy) IsExhaustive() bool {
	return p.Size <= All
}

// Cap is the most elements checked in a container, or -1 if unbounded
func (p Policy) Cap() int {
	if p.IsExhaustive() {
		return -1
	}
	return int(p.Size)
}

func (p Policy) perm(n int) []int {
	if p.Source == nil {
		return rand.Perm(n)
	}
	return rand.New(p.Source).Perm(n)
}

// Indices returns, in ascending order, which of n elements are checked
func (p Policy) Indices(n int) []int {
	if p.IsExhaustive() || n <= int(p.Size) {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	chosen := p.perm(n)[:p.Size]
	slices.Sort(chosen)
	return chosen
}

// Sample returns the subsequence of xs that is checked
func (p Policy) Sample(xs []any) []any {
	if p.IsExhaustive() || len(xs) <= int(p.Size) {
		return xs
	}
	indices := p.Indices(len(xs))
	sampled := make([]any, len(indices))
	for i, idx := range indices {
		sampled[i] = xs[idx]
	}
	return sampled
}

// All reports whether pred holds for every sampled index out of n.
// It stops at the first index pred rejects.
func (p Policy) All(n int, pred func(i int) bool) bool {
	for _, i := range p.Indices(n) {
		if !pred(i) {
			return false
		}
	}
	return true
}

// Head consumes the leading elements of a lazy sequence, at most Cap of them,
// or DefaultSize of them when the policy is exhaustive but the sequence is infinite.
// No element past the cap is ever produced.
// exhausted is true when seq ended on its own before the cap was reached, in which
// case head holds every element seq produces. A finite sequence exactly as long as
// the cap is not known to be exhausted.
func (p Policy) Head(seq iter.Seq[any], infinite bool) (head []any, exhausted bool) {
	limit := p.Cap()
	if limit < 0 && infinite {
		limit = int(DefaultSize)
	}
	if seq == nil {
		return nil, !infinite
	}
	capped := false
	for elem := range seq {
		head = append(head, elem)
		if limit >= 0 && len(head) >= limit {
			capped = true
			break
		}
	}
	return head, !infinite && !capped
}

// Sample returns the elements of container which policy checks
func Sample(container []any, policy Policy) []any {
	return policy.Sample(container)
}
