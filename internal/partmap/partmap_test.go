package partmap

import (
	"sync"
	"testing"

	"github.com/go-ricrob/photosolver/internal/packed"
)

func TestMap(t *testing.T) {
	start := packed.P4{0x00, 0x01, 0x02, 0x03}
	pm := New(start, 8)

	if from, ok := pm.Load(start); !ok || from != (packed.P4{}) {
		t.Fatalf("got start predecessor %v %t", from, ok)
	}

	var wg sync.WaitGroup
	stored := make([]bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := packed.P4{byte(0x10 + i%8), 0x01, 0x02, 0x03}
			stored[i] = pm.StoreTarget(k, start)
		}(i)
	}
	wg.Wait()

	numStored := 0
	for _, ok := range stored {
		if ok {
			numStored++
		}
	}
	if numStored != 8 {
		t.Fatalf("stored %d states, want 8", numStored)
	}
	if pm.Size() != 9 || pm.NumTarget() != 8 {
		t.Fatalf("got size %d targets %d", pm.Size(), pm.NumTarget())
	}

	pm.SwapTargets()
	numSource := 0
	for i := 0; i < pm.NumPart(); i++ {
		numSource += len(pm.Source(i))
	}
	if numSource != 8 || pm.NumTarget() != 0 {
		t.Fatalf("got %d sources %d targets", numSource, pm.NumTarget())
	}
}
