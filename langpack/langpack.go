// Package langpack is the data-loading collaborator spec.md §1 and §6
// declare out of scope for the tokenizer core itself: it resolves a
// language's on-disk data files into the plain values
// (lexicon.StringStore, a feature function, rule pattern strings, the
// rules list) that the core's construction functions take as parameters.
//
// The core never reads a file; langpack is the thing that does, the same
// way the teacher's cmd/vartan calls spec.Parse to turn a grammar file on
// disk into the AST the compiler core consumes.
package langpack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/vocab-lang/vocab/fingerprint"
	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/ruleset"
	"github.com/vocab-lang/vocab/surface"
	"github.com/vocab-lang/vocab/tok"
	"github.com/vocab-lang/vocab/vocaberr"
)

// SupportedFormats is the range of language-pack manifest format versions
// this build of the core can load. It is checked independently of, and
// has nothing to do with, the lexicon's own headerless dump/load wire
// format (spec.md §6 Persistence format), which carries no version at all
// by design.
const SupportedFormats = ">= 1.0.0, < 2.0.0"

// Manifest is the small JSON sidecar describing a language pack.
type Manifest struct {
	FormatVersion string `json:"format_version"`
	Language      string `json:"language"`
}

// ruleFile is the JSON shape of the tokenization rule file: an ordered
// list of (chunk, expansion) pairs (spec.md §6).
type ruleFile struct {
	Chunk     string   `json:"chunk"`
	Expansion []string `json:"expansion"`
}

// lexemeFlags is the JSON shape of one entry in the lexemes seed file. The
// core treats the resulting payload as opaque; these four flags are this
// language pack's chosen encoding of it, not something the core
// interprets.
type lexemeFlags struct {
	IsAlpha bool `json:"is_alpha"`
	IsDigit bool `json:"is_digit"`
	IsPunct bool `json:"is_punct"`
	IsSpace bool `json:"is_space"`
}

func (f lexemeFlags) encode() lexicon.Features {
	var feat lexicon.Features
	var b byte
	if f.IsAlpha {
		b |= 1 << 0
	}
	if f.IsDigit {
		b |= 1 << 1
	}
	if f.IsPunct {
		b |= 1 << 2
	}
	if f.IsSpace {
		b |= 1 << 3
	}
	feat[0] = b
	return feat
}

// Language is a fully constructed tokenizer core, ready to tokenize.
type Language struct {
	Manifest  Manifest
	Strings   *surface.Store
	Lexicon   *lexicon.Lexicon
	Rules     *ruleset.Rules
	Tokenizer *tok.Tokenizer
}

// Load resolves <root>/<lang>/{tokenization,prefix,suffix,infix,lexemes,
// strings} plus <root>/<lang>/manifest.json into a Language.
func Load(root, lang string) (*Language, error) {
	dir := filepath.Join(root, lang)

	manifest, err := loadManifest(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, err
	}
	if err := checkFormatVersion(manifest.FormatVersion); err != nil {
		return nil, err
	}

	prefixPattern, err := loadPattern(filepath.Join(dir, "prefix"))
	if err != nil {
		return nil, err
	}
	suffixPattern, err := loadPattern(filepath.Join(dir, "suffix"))
	if err != nil {
		return nil, err
	}
	infixPattern, err := loadPattern(filepath.Join(dir, "infix"))
	if err != nil {
		return nil, err
	}
	rules, err := ruleset.Compile(prefixPattern, suffixPattern, infixPattern)
	if err != nil {
		return nil, err
	}

	strs := surface.New()
	if err := loadStrings(filepath.Join(dir, "strings"), strs); err != nil {
		return nil, err
	}

	flags, err := loadLexemes(filepath.Join(dir, "lexemes"))
	if err != nil {
		return nil, err
	}
	features := func(s string) lexicon.Features {
		if f, ok := flags[s]; ok {
			return f.encode()
		}
		return lexicon.Features{}
	}
	lex := lexicon.New(strs, features)

	// Seed the lexicon from the lexemes file up front, in a stable order,
	// so ordinal assignment for known words is deterministic across runs
	// that load the same language pack (spec.md §6 "lexemes: mapping from
	// surface form to opaque feature payload used to seed the lexicon").
	for _, surf := range sortedKeys(flags) {
		lex.Set(fingerprint.OfString(surf), surf, flags[surf].encode())
	}

	entries, err := loadRules(filepath.Join(dir, "tokenization"))
	if err != nil {
		return nil, err
	}
	seeds := make([]tok.RuleEntry, len(entries))
	for i, e := range entries {
		seeds[i] = tok.RuleEntry{Chunk: e.Chunk, Expansion: e.Expansion}
	}

	tokenizer := tok.New(lex, rules, seeds)

	return &Language{
		Manifest:  manifest,
		Strings:   strs,
		Lexicon:   lex,
		Rules:     rules,
		Tokenizer: tokenizer,
	}, nil
}

func loadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, vocaberr.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, vocaberr.Configf("langpack: parsing manifest %q: %w", path, err)
	}
	return m, nil
}

// checkFormatVersion validates the manifest's declared format against the
// range this build supports, independent of the lexicon's own wire
// format.
func checkFormatVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return vocaberr.Configf("langpack: manifest format_version %q is not valid semver: %w", version, err)
	}
	constraint, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		// SupportedFormats is a package constant; a failure here is a bug
		// in this package, not a caller error.
		panic(fmt.Sprintf("langpack: invalid built-in constraint %q: %v", SupportedFormats, err))
	}
	if !constraint.Check(v) {
		return vocaberr.Configf("langpack: manifest format_version %v does not satisfy %v", v, SupportedFormats)
	}
	return nil
}

func loadPattern(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", vocaberr.Fatal(err)
	}
	return strings.TrimSpace(string(b)), nil
}

func loadRules(path string) ([]ruleFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, vocaberr.Fatal(err)
	}
	var entries []ruleFile
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, vocaberr.Configf("langpack: parsing tokenization rules %q: %w", path, err)
	}
	return entries, nil
}

func loadLexemes(path string) (map[string]lexemeFlags, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, vocaberr.Fatal(err)
	}
	flags := map[string]lexemeFlags{}
	if err := json.Unmarshal(b, &flags); err != nil {
		return nil, vocaberr.Configf("langpack: parsing lexemes %q: %w", path, err)
	}
	return flags, nil
}

func sortedKeys(m map[string]lexemeFlags) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func loadStrings(path string, strs *surface.Store) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return vocaberr.Fatal(err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		strs.Intern(line)
	}
	return nil
}
