package testutil

import (
	"context"
	"sync"

	"github.com/roach88/babel/internal/ir"
)

// MemoryRecorder keeps derivation records in memory and stamps them with a
// monotonic sequence starting at 1.
//
// Thread-safety: All methods are safe for concurrent use.
type MemoryRecorder struct {
	mu      sync.Mutex
	seq     int64
	records []ir.DerivationRecord

	// Err, when set, is returned by RecordDerivation and nothing is kept.
	Err error
}

// RecordDerivation stores rec and returns its sequence number.
func (r *MemoryRecorder) RecordDerivation(_ context.Context, rec ir.DerivationRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	r.seq++
	rec.Seq = r.seq
	r.records = append(r.records, rec)
	return rec.Seq, nil
}

// Records returns a copy of the stored records in sequence order.
func (r *MemoryRecorder) Records() []ir.DerivationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ir.DerivationRecord(nil), r.records...)
}
