package langpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vocab-lang/vocab/fingerprint"
	"github.com/vocab-lang/vocab/token"
)

func writeFixture(t *testing.T, root, lang string) string {
	t.Helper()
	dir := filepath.Join(root, lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}

	files := map[string]string{
		"manifest.json": `{"format_version":"1.0.0","language":"en"}`,
		"tokenization": `[
			{"chunk": "ain't", "expansion": ["are", "not"]},
			{"chunk": "U.S.", "expansion": ["U.S."]}
		]`,
		"prefix": `[$]`,
		"suffix": `[.,]`,
		"infix":  `-`,
		"lexemes": `{
			"hello": {"is_alpha": true},
			"42": {"is_digit": true}
		}`,
		"strings": "hello\nworld\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadAndTokenize(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "en")

	lang, err := Load(root, "en")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lang.Manifest.Language != "en" {
		t.Fatalf("unexpected manifest language: %q", lang.Manifest.Language)
	}

	sink := token.New(lang.Lexicon)
	if err := lang.Tokenizer.Tokenize("ain't state-of-the-art.", sink); err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []string{"are", "not", "state", "-", "of-the-art", "."}
	if diff := cmp.Diff(want, sink.Surfaces()); diff != "" {
		t.Fatalf("surface sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSeedsLexemesUpFront(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "en")

	lang, err := Load(root, "en")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	lex, ok := lang.Lexicon.Lookup(fingerprint.OfString("hello"))
	if !ok {
		t.Fatalf("lexemes seed file should have preloaded %q into the lexicon", "hello")
	}
	if lex.Features[0]&1 == 0 {
		t.Fatalf("expected is_alpha flag set for %q", "hello")
	}
}

func TestCheckFormatVersionRejectsIncompatible(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "en")
	if err := os.WriteFile(filepath.Join(root, "en", "manifest.json"), []byte(`{"format_version":"2.0.0","language":"en"}`), 0o644); err != nil {
		t.Fatalf("rewriting manifest: %v", err)
	}

	if _, err := Load(root, "en"); err == nil {
		t.Fatalf("expected Load to reject an incompatible format_version")
	}
}
