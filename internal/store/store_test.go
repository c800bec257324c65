package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/babel/internal/ir"
)

// createTestStore opens a fresh database under t.TempDir().
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"snapshots", "derivations"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestRecordDerivation_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for lang := 1; lang <= 3; lang++ {
		seq, err := s.RecordDerivation(ctx, ir.DerivationRecord{
			ProjectID: "p1",
			Language:  lang,
			Ancestor:  0,
			Inherited: lang * 10,
			Digest:    "d",
		})
		if err != nil {
			t.Fatalf("RecordDerivation() failed: %v", err)
		}
		if seq != int64(lang) {
			t.Errorf("seq = %d, want %d", seq, lang)
		}
	}
	if _, err := s.RecordDerivation(ctx, ir.DerivationRecord{ProjectID: "other", Language: 1}); err != nil {
		t.Fatalf("RecordDerivation() failed: %v", err)
	}

	recs, err := s.ReadDerivations(ctx, "p1", -1)
	if err != nil {
		t.Fatalf("ReadDerivations() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Language != i+1 || rec.Inherited != (i+1)*10 {
			t.Errorf("record %d = %+v", i, rec)
		}
	}

	recs, err = s.ReadDerivations(ctx, "p1", 2)
	if err != nil {
		t.Fatalf("ReadDerivations() failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Seq != 2 {
		t.Errorf("filtered records = %+v", recs)
	}
}

func TestReadDerivations_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	recs, err := s.ReadDerivations(context.Background(), "nobody", -1)
	if err != nil {
		t.Fatalf("ReadDerivations() failed: %v", err)
	}
	if recs == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestWriteSnapshot_Dedupes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.WriteSnapshot(ctx, "p1", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	again, err := s.WriteSnapshot(ctx, "p1", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	if first.Seq != again.Seq || first.Digest != again.Digest {
		t.Errorf("duplicate body got a new row: %+v vs %+v", first, again)
	}

	second, err := s.WriteSnapshot(ctx, "p1", []byte(`{"a":2}`))
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Errorf("second.Seq = %d, want > %d", second.Seq, first.Seq)
	}

	latest, found, err := s.LatestSnapshot(ctx, "p1")
	if err != nil || !found {
		t.Fatalf("LatestSnapshot() = found %v, err %v", found, err)
	}
	if string(latest.Body) != `{"a":2}` || latest.Digest != ir.ProjectDigest([]byte(`{"a":2}`)) {
		t.Errorf("latest = %+v", latest)
	}

	_, found, err = s.LatestSnapshot(ctx, "p2")
	if err != nil || found {
		t.Errorf("LatestSnapshot(p2) = found %v, err %v", found, err)
	}
}
