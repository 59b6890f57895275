package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.json")
}

func testBatch(id string, items ...Item) Batch {
	return Batch{
		ID:        id,
		Timestamp: time.Now(),
		Items:     items,
	}
}

func TestStoreStartsEmptyWhenFileAbsent(t *testing.T) {
	s, err := NewStore(testStorePath(t))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := len(s.List()); got != 0 {
		t.Errorf("Expected empty log, got %d batches", got)
	}
	if s.Last() != nil {
		t.Error("Last should return nil for empty log")
	}
}

func TestStoreAppendPersists(t *testing.T) {
	path := testStorePath(t)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	batch := testBatch("b1",
		Item{Name: "a.txt", From: "/src/a.txt", To: "/hold/a.txt"},
		Item{Name: "b.txt", From: "/src/b.txt", To: "/hold/b.txt"},
	)
	if err := s.Append(batch); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Reopen and verify the batch survived
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("Reopening store failed: %v", err)
	}
	batches := reopened.List()
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch after reopen, got %d", len(batches))
	}
	if batches[0].ID != "b1" {
		t.Errorf("Expected batch ID b1, got %s", batches[0].ID)
	}
	if len(batches[0].Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(batches[0].Items))
	}
	if batches[0].Items[0].Name != "a.txt" || batches[0].Items[1].Name != "b.txt" {
		t.Errorf("Item order not preserved: %+v", batches[0].Items)
	}
}

func TestStorePopLast(t *testing.T) {
	path := testStorePath(t)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	for _, id := range []string{"first", "second"} {
		if err := s.Append(testBatch(id, Item{Name: id, To: "/hold/" + id})); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	batch, err := s.PopLast()
	if err != nil {
		t.Fatalf("PopLast failed: %v", err)
	}
	if batch == nil || batch.ID != "second" {
		t.Fatalf("Expected batch second, got %+v", batch)
	}

	// The pop must be durable
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("Reopening store failed: %v", err)
	}
	batches := reopened.List()
	if len(batches) != 1 || batches[0].ID != "first" {
		t.Errorf("Expected only batch first after pop, got %+v", batches)
	}
}

func TestStorePopLastEmpty(t *testing.T) {
	s, err := NewStore(testStorePath(t))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	batch, err := s.PopLast()
	if err != nil {
		t.Fatalf("PopLast on empty log should not error: %v", err)
	}
	if batch != nil {
		t.Errorf("PopLast on empty log should return nil, got %+v", batch)
	}
}

func TestStoreLastDoesNotMutate(t *testing.T) {
	s, err := NewStore(testStorePath(t))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Append(testBatch("b1", Item{Name: "x", To: "/hold/x"})); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if last := s.Last(); last == nil || last.ID != "b1" {
		t.Fatalf("Last returned %+v", last)
	}
	if got := len(s.List()); got != 1 {
		t.Errorf("Last must not remove batches, have %d", got)
	}
}

func TestStoreRemoveItemsDropsEmptyBatches(t *testing.T) {
	path := testStorePath(t)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	gone := Item{Name: "gone", To: "/hold/gone"}
	kept := Item{Name: "kept", To: "/hold/kept"}
	if err := s.Append(testBatch("mixed", gone, kept)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(testBatch("doomed", Item{Name: "only", To: "/hold/only"})); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	err = s.RemoveItems([]Item{gone, {Name: "only", To: "/hold/only"}})
	if err != nil {
		t.Fatalf("RemoveItems failed: %v", err)
	}

	batches := s.List()
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch, got %d", len(batches))
	}
	if batches[0].ID != "mixed" || len(batches[0].Items) != 1 || batches[0].Items[0].Name != "kept" {
		t.Errorf("Unexpected surviving batches: %+v", batches)
	}
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	path := testStorePath(t)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Append(testBatch("b1", Item{Name: "x", To: "/hold/x"})); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), tempSuffix) {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
}

func TestStoreSweepsStaleTempFiles(t *testing.T) {
	path := testStorePath(t)
	stale := filepath.Join(filepath.Dir(path), tempPrefix+"stale"+tempSuffix)
	if err := os.WriteFile(stale, []byte("{}"), 0600); err != nil {
		t.Fatalf("Failed to plant stale temp file: %v", err)
	}

	if _, err := NewStore(path); err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("Stale temp file should have been swept")
	}
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	path := testStorePath(t)
	if err := os.WriteFile(path, []byte("not json at all"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := NewStore(path); err == nil {
		t.Fatal("Expected error for corrupt history file, got nil")
	}
}

func TestStoreRejectsFutureVersion(t *testing.T) {
	path := testStorePath(t)
	if err := os.WriteFile(path, []byte(`{"version": 99, "batches": []}`), 0600); err != nil {
		t.Fatalf("Failed to write history file: %v", err)
	}

	if _, err := NewStore(path); err == nil {
		t.Fatal("Expected error for unsupported version, got nil")
	}
}
