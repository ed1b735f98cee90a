package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vocab-lang/vocab/fingerprint"
)

// memStringStore is a trivial in-memory StringStore used only by these
// tests; the real interner is an external collaborator (spec.md §1).
type memStringStore struct {
	byID  map[uint64]string
	byStr map[string]uint64
	next  uint64
}

func newMemStringStore() *memStringStore {
	return &memStringStore{byID: map[uint64]string{}, byStr: map[string]uint64{}}
}

func (s *memStringStore) Intern(str string) uint64 {
	if id, ok := s.byStr[str]; ok {
		return id
	}
	s.next++
	id := s.next
	s.byStr[str] = id
	s.byID[id] = str
	return id
}

func (s *memStringStore) Lookup(id uint64) (string, bool) {
	str, ok := s.byID[id]
	return str, ok
}

func noopFeatures(string) Features { return Features{} }

func fp(s string) uint64 { return fingerprint.OfString(s) }

func TestGetInsertsThenReturnsSameRef(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)

	a := lx.Get(fp("hello"), []byte("hello"))
	b := lx.Get(fp("hello"), []byte("hello"))
	if a != b {
		t.Fatalf("Get did not return the same reference for the same fingerprint")
	}
	if a.Ordinal != 1 {
		t.Fatalf("first inserted record should have ordinal 1, got %d", a.Ordinal)
	}
}

func TestOrdinalsAreDenseAndMonotonic(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	words := []string{"hello", "world", "hello", "foo", "world", "bar"}
	var seen []uint32
	for _, w := range words {
		lex := lx.Get(fp(w), []byte(w))
		seen = append(seen, lex.Ordinal)
	}
	// "hello" -> 1, "world" -> 2, "hello" -> 1, "foo" -> 3, "world" -> 2, "bar" -> 4
	want := []uint32{1, 2, 1, 3, 2, 4}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("ordinal sequence mismatch (-want +got):\n%s", diff)
	}
	if lx.Len() != 4 {
		t.Fatalf("expected 4 distinct records, got %d", lx.Len())
	}
}

func TestSetPreservesOrdinal(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	first := lx.Get(fp("run"), []byte("run"))
	ordinal := first.Ordinal

	payload := Features{1, 2, 3}
	updated := lx.Set(fp("run"), "run", payload)
	if updated.Ordinal != ordinal {
		t.Fatalf("Set changed the ordinal: had %d, now %d", ordinal, updated.Ordinal)
	}
	if updated.Features != payload {
		t.Fatalf("Set did not apply the new payload")
	}
	if updated != first {
		t.Fatalf("Set returned a different reference for an existing record")
	}
}

func TestSetCreatesWhenAbsent(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	payload := Features{9}
	lex := lx.Set(fp("new"), "new", payload)
	if lex.Ordinal != 1 {
		t.Fatalf("expected first record to get ordinal 1, got %d", lex.Ordinal)
	}
	if lex.Features != payload {
		t.Fatalf("created record did not carry the supplied payload")
	}
}

func TestLookupMatchesGet(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	inserted := lx.Get(fp("tree"), []byte("tree"))
	looked, ok := lx.Lookup(fp("tree"))
	if !ok {
		t.Fatalf("Lookup did not find a record Get just inserted")
	}
	if looked != *inserted {
		t.Fatalf("Lookup returned a different record than Get inserted")
	}
}

func TestLookupMissing(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	_, ok := lx.Lookup(fp("absent"))
	if ok {
		t.Fatalf("Lookup reported success for a fingerprint never inserted")
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	store := newMemStringStore()
	features := func(s string) Features {
		var f Features
		for i := 0; i < len(s) && i < len(f); i++ {
			f[i] = s[i]
		}
		return f
	}

	src := New(store, features)
	for _, w := range []string{"the", "quick", "brown", "fox"} {
		src.Get(fp(w), []byte(w))
	}

	path := filepath.Join(t.TempDir(), "lexicon.bin")
	if err := src.Dump(path); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	dst := New(store, features)
	if err := dst.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if dst.Len() != src.Len() {
		t.Fatalf("record count mismatch: src=%d dst=%d", src.Len(), dst.Len())
	}
	for ordinal := uint32(1); ordinal <= uint32(src.Len()); ordinal++ {
		want := src.ByOrdinal(ordinal)
		got := dst.ByOrdinal(ordinal)
		if diff := cmp.Diff(*want, *got); diff != "" {
			t.Fatalf("record %d mismatch after round trip (-want +got):\n%s", ordinal, diff)
		}
		if found, ok := dst.ByFingerprint(want.Fingerprint); !ok || found.Ordinal != want.Ordinal {
			t.Fatalf("record %d not reachable by fingerprint after load", ordinal)
		}
	}
}

func TestDumpFailsIfPathIsDirectory(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	lx.Get(fp("x"), []byte("x"))

	dir := t.TempDir()
	if err := lx.Dump(dir); err == nil {
		t.Fatalf("expected Dump to fail when the path is a directory")
	}
}

func TestLoadRequiresFreshLexicon(t *testing.T) {
	lx := New(newMemStringStore(), noopFeatures)
	lx.Get(fp("already-here"), []byte("already-here"))

	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	if err := lx.Load(path); err == nil {
		t.Fatalf("expected Load to reject a non-empty lexicon")
	}
}
