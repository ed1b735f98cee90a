package lexicon

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/vocab-lang/vocab/vocaberr"
)

// recordSize is the width, in bytes, of one on-disk lexeme record:
// Ordinal (4) + Fingerprint (8) + StringRef (8) + Features (FeaturePayloadSize).
const recordSize = 4 + 8 + 8 + FeaturePayloadSize

// Dump writes every record except the reserved 0th to path, in ordinal
// order, as a flat sequence of fixed-size records: no header, no trailer,
// no framing. It fails if path already exists and is a directory.
func (lx *Lexicon) Dump(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return vocaberr.Fatalf("lexicon: dump path %q is a directory", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return vocaberr.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, recordSize)
	for ordinal := 1; ordinal < len(lx.sequence); ordinal++ {
		lex := lx.sequence[ordinal]
		encodeRecord(buf, lex)
		n, err := f.Write(buf)
		if err != nil {
			return vocaberr.Fatal(err)
		}
		if n != recordSize {
			// A short write during dump is an invariant violation: the
			// lexicon being written is presumed corrupt from this point on.
			return vocaberr.Fatalf("lexicon: short write dumping ordinal %d: wrote %d of %d bytes", ordinal, n, recordSize)
		}
	}
	return nil
}

// Load reads fixed-size records sequentially from path until a short read,
// allocating each into the lexicon's ordinal sequence and fingerprint
// index. It must be called on an empty, freshly constructed Lexicon.
func (lx *Lexicon) Load(path string) error {
	if len(lx.sequence) != 1 {
		return vocaberr.Fatalf("lexicon: Load called on a non-empty lexicon (%d records already present)", lx.Len())
	}

	f, err := os.Open(path)
	if err != nil {
		return vocaberr.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, recordSize)
	for {
		_, err := io.ReadFull(f, buf)
		if err == io.EOF {
			// Clean end of file: no more records.
			return nil
		}
		if err == io.ErrUnexpectedEOF {
			// A short read of a partial trailing record. The persistence
			// format has no framing to detect this as an error by design
			// (end of file is detected by a short read): treat it the same
			// as a clean EOF.
			return nil
		}
		if err != nil {
			return vocaberr.Fatal(err)
		}

		lex := decodeRecord(buf)
		if int(lex.Ordinal) != len(lx.sequence) {
			return vocaberr.Fatalf("lexicon: out-of-order ordinal on load: expected %d, got %d", len(lx.sequence), lex.Ordinal)
		}
		lx.byFingerprint[lex.Fingerprint] = lex
		lx.sequence = append(lx.sequence, lex)
	}
}

func encodeRecord(buf []byte, lex *Lexeme) {
	binary.LittleEndian.PutUint32(buf[0:4], lex.Ordinal)
	binary.LittleEndian.PutUint64(buf[4:12], lex.Fingerprint)
	binary.LittleEndian.PutUint64(buf[12:20], lex.StringRef)
	copy(buf[20:20+FeaturePayloadSize], lex.Features[:])
}

func decodeRecord(buf []byte) *Lexeme {
	lex := &Lexeme{
		Ordinal:     binary.LittleEndian.Uint32(buf[0:4]),
		Fingerprint: binary.LittleEndian.Uint64(buf[4:12]),
		StringRef:   binary.LittleEndian.Uint64(buf[12:20]),
	}
	copy(lex.Features[:], buf[20:20+FeaturePayloadSize])
	return lex
}
