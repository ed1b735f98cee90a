package langpack

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/vocab-lang/vocab/vocaberr"
)

// dataFiles are the files a Reloader watches for a given language. A
// change to any of them triggers a full reload — per spec.md §5, the core
// has no incremental-update story, so the only safe move on a data change
// is to reconstruct the whole lexicon/ruleset/tokenizer triple from
// scratch and swap it in atomically.
var dataFiles = []string{
	"manifest.json",
	"tokenization",
	"prefix",
	"suffix",
	"infix",
	"lexemes",
	"strings",
}

// Reloader watches a language pack's data files and keeps a live, atomically
// swapped *Language up to date for long-running processes (e.g. "vocab
// tokenize --watch"). This has no equivalent in the core's own spec — the
// core takes a Language as a fixed input — but it is the natural ambient
// companion to a data directory that can change underneath a running
// process.
type Reloader struct {
	root, lang string

	watcher *fsnotify.Watcher
	onError func(error)

	mu      sync.RWMutex
	current *Language
}

// Watch loads lang from root once, then watches its data files for
// changes, reloading and atomically swapping in a new *Language whenever
// one of them is written. onError, if non-nil, is called with any reload
// failure; the previously loaded Language keeps serving until a reload
// succeeds.
func Watch(root, lang string, onError func(error)) (*Reloader, error) {
	initial, err := Load(root, lang)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, vocaberr.Fatal(err)
	}

	dir := filepath.Join(root, lang)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, vocaberr.Fatal(err)
	}

	r := &Reloader{
		root:    root,
		lang:    lang,
		watcher: w,
		onError: onError,
		current: initial,
	}
	go r.loop()
	return r, nil
}

// Current returns the most recently loaded Language. Safe for concurrent
// use with reloads in progress.
func (r *Reloader) Current() *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Close stops watching and releases the underlying OS watch handle.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}

func (r *Reloader) loop() {
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isTrackedFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.reload()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			if r.onError != nil {
				r.onError(vocaberr.Fatal(err))
			}
		}
	}
}

func (r *Reloader) reload() {
	next, err := Load(r.root, r.lang)
	if err != nil {
		if r.onError != nil {
			r.onError(err)
		}
		return
	}
	r.mu.Lock()
	r.current = next
	r.mu.Unlock()
}

func isTrackedFile(path string) bool {
	base := filepath.Base(path)
	for _, f := range dataFiles {
		if base == f {
			return true
		}
	}
	return false
}
