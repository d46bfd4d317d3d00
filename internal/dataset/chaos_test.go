package dataset_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

// Test_Add_IndexWriteFailure_LeavesDataWrittenButUnindexed exercises the
// tolerated post-crash state described by the dataset's atomicity model: a
// failure between the data write and the index flush leaves bytes on disk
// that the index does not (yet) cover. That is not corruption — the next
// successful add still reconciles correctly against it once the index
// write eventually succeeds.
func Test_Add_IndexWriteFailure_LeavesDataWrittenButUnindexed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	real := fsx.NewReal()
	paths := dataset.Resolve(dir+"/data", "", "")

	if err := dataset.Create(real, paths, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	chaos := fsx.NewChaos(real)
	chaos.FailAtomicWrite = true

	err := dataset.Add(chaos, paths, 0, bytes.NewReader(bytes.Repeat([]byte{0x42}, 32)), dataset.PolicyError)
	if !errors.Is(err, fsx.ErrChaosInjected) {
		t.Fatal("expected the injected atomic-write failure to surface")
	}

	// The index write never landed, so the index still reports no ranges...
	idx, getErr := dataset.GetIndex(real, paths, 0)
	if getErr != nil {
		t.Fatalf("get-index: %v", getErr)
	}

	if len(idx) != 0 {
		t.Fatalf("expected index to still be empty, got % x", idx)
	}

	// ...even though the data bytes physically landed on disk.
	h, openErr := dataset.Open(real, paths, dataset.ModeReadOnly)
	if openErr != nil {
		t.Fatalf("open: %v", openErr)
	}

	size, sizeErr := h.Size()
	_ = h.Close()

	if sizeErr != nil {
		t.Fatalf("size: %v", sizeErr)
	}

	if size < 32 {
		t.Fatalf("expected data file to have been extended to >= 32 bytes, got %d", size)
	}
}

// Test_Add_PolicyError_ChaosPartialWrite_NeverVisibleOnConflict confirms
// that even when the underlying data write is interrupted partway through,
// a PolicyError conflict is detected by the read-only scan before any
// write is attempted, so the interrupted write never fires in the first
// place and the pre-existing bytes are untouched.
func Test_Add_PolicyError_ChaosPartialWrite_NeverVisibleOnConflict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	real := fsx.NewReal()
	paths := dataset.Resolve(dir+"/data", "", "")

	if err := dataset.Create(real, paths, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := dataset.Add(real, paths, 0, bytes.NewReader(bytes.Repeat([]byte{0xaa}, 64)), dataset.PolicyError); err != nil {
		t.Fatalf("initial add: %v", err)
	}

	chaos := fsx.NewChaos(real)
	chaos.FailWriteAfterBytes = 1 // any write at all should be fatal if attempted

	err := dataset.Add(chaos, paths, 0, bytes.NewReader(bytes.Repeat([]byte{0xbb}, 64)), dataset.PolicyError)
	if err == nil {
		t.Fatal("expected a data-conflict error")
	}

	if errors.Is(err, fsx.ErrChaosInjected) {
		t.Fatal("conflict should have been caught by the read-only scan, never reaching a write")
	}

	var buf bytes.Buffer

	length := uint64(64)
	if err := dataset.Read(real, paths, &buf, 0, &length, nil); err != nil {
		t.Fatalf("read: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), bytes.Repeat([]byte{0xaa}, 64)) {
		t.Fatal("data bytes changed despite the conflict never reaching a write")
	}
}
