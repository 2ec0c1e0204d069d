package diag

import (
	"sync"
	"testing"
)

func TestRecorderNilIsNoOp(t *testing.T) {
	var r *Recorder
	r.RecordLookup(true)
	r.RecordInsert()
	r.RecordGrowth()
	snap := r.Snapshot()
	if snap.Lookups != 0 || snap.Hits != 0 || snap.Inserts != 0 || snap.GrowthEvents != 0 {
		t.Fatalf("nil recorder snapshot should have zero counters, got %+v", snap)
	}
}

func TestRecorderCounts(t *testing.T) {
	r := &Recorder{}
	r.RecordLookup(true)
	r.RecordLookup(false)
	r.RecordInsert()
	r.RecordGrowth()
	r.RecordGrowth()

	snap := r.Snapshot()
	if snap.Lookups != 2 {
		t.Errorf("Lookups = %d, want 2", snap.Lookups)
	}
	if snap.Hits != 1 {
		t.Errorf("Hits = %d, want 1", snap.Hits)
	}
	if snap.Inserts != 1 {
		t.Errorf("Inserts = %d, want 1", snap.Inserts)
	}
	if snap.GrowthEvents != 2 {
		t.Errorf("GrowthEvents = %d, want 2", snap.GrowthEvents)
	}
	if snap.LastActivity.IsZero() {
		t.Error("LastActivity should be set after a recorded lookup")
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	const goroutines = 16
	const perGoroutine = 1000

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				r.RecordLookup(j%2 == 0)
			}
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	if snap.Lookups != goroutines*perGoroutine {
		t.Errorf("Lookups = %d, want %d", snap.Lookups, goroutines*perGoroutine)
	}
	if snap.Hits != goroutines*perGoroutine/2 {
		t.Errorf("Hits = %d, want %d", snap.Hits, goroutines*perGoroutine/2)
	}
}
