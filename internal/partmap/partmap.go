// Package partmap provide a partitioned map of search states.
package partmap

import (
	"hash/maphash"
	"sync"

	"github.com/go-ricrob/photosolver/internal/packed"
)

type part struct {
	mu             sync.Mutex
	m              map[packed.P4]packed.P4 // to/from map
	source, target []packed.P4
}

// Map is a to/from map split into independently locked parts. Each part keeps the states
// of the current BFS level (source) and the states discovered for the next one (target).
type Map struct {
	numPart uint64
	seed    maphash.Seed
	parts   []*part
}

// New returns a map holding the start state. The start state maps to the zero P4.
func New(startState packed.P4, numPart uint64) *Map {
	if numPart == 0 {
		numPart = 1
	}
	pm := &Map{
		numPart: numPart,
		seed:    maphash.MakeSeed(),
		parts:   make([]*part, numPart),
	}
	for i := range pm.parts {
		pm.parts[i] = &part{m: make(map[packed.P4]packed.P4, 1024)}
	}
	var initState packed.P4
	part := pm.part(startState)
	part.m[startState] = initState
	part.source = append(part.source, startState)
	return pm
}

func (pm *Map) part(k packed.P4) *part { return pm.parts[k.Hash(pm.seed)%pm.numPart] }

// Load returns the state k was reached from.
func (pm *Map) Load(k packed.P4) (packed.P4, bool) {
	part := pm.part(k)
	part.mu.Lock()
	v, ok := part.m[k]
	part.mu.Unlock()
	return v, ok
}

// StoreTarget stores k reached from v and queues k for the next level.
// It returns false if k was already known.
func (pm *Map) StoreTarget(k, v packed.P4) bool {
	part := pm.part(k)
	part.mu.Lock()
	if _, ok := part.m[k]; !ok {
		part.m[k] = v
		part.target = append(part.target, k)
		part.mu.Unlock()
		return true
	}
	part.mu.Unlock()
	return false
}

// Size returns the number of stored states.
func (pm *Map) Size() int {
	size := 0
	for _, part := range pm.parts {
		part.mu.Lock()
		size += len(part.m)
		part.mu.Unlock()
	}
	return size
}

// NumTarget returns the number of states queued for the next level.
func (pm *Map) NumTarget() int {
	n := 0
	for _, part := range pm.parts {
		part.mu.Lock()
		n += len(part.target)
		part.mu.Unlock()
	}
	return n
}

// NumPart returns the number of parts.
func (pm *Map) NumPart() int { return int(pm.numPart) }

// Source returns the current level states of part idx. It must not be called
// concurrently with SwapTargets.
func (pm *Map) Source(idx int) []packed.P4 { return pm.parts[idx].source }

// SwapTargets makes the queued states the current level.
func (pm *Map) SwapTargets() {
	for _, part := range pm.parts {
		part.source, part.target = part.target, nil
	}
}
