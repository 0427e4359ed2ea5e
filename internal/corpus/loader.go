package corpus

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"plq/internal/errors"
	"plq/internal/logging"
)

// Load reads a corpus document and builds the immutable snapshot.
//
// Supported formats: .json, .yaml/.yml, optionally wrapped in .gz or .zst.
// Structural defects (unparseable document, count mismatch, duplicate ids
// or numbers, overlapping category ranges) fail with a fatal error;
// data-quality defects (dangling references, asymmetric relationships,
// sequence members outside their category) are logged as warnings and kept.
func Load(path string, logger *logging.Logger) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CorpusInvalid, "cannot open corpus document", err)
	}
	defer f.Close()

	reader, format, err := wrapReader(f, path)
	if err != nil {
		return nil, err
	}

	var doc wireDocument
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(reader)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.CorpusInvalid, "unparseable YAML corpus document", err)
		}
	default:
		dec := json.NewDecoder(reader)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.CorpusInvalid, "unparseable JSON corpus document", err)
		}
	}

	snap, err := buildSnapshot(&doc)
	if err != nil {
		return nil, err
	}

	for _, w := range snap.Warnings {
		logger.Warn("corpus consistency warning", logging.Fields{
			"kind":    w.Kind,
			"subject": w.Subject,
			"detail":  w.Detail,
		})
	}

	logger.Info("corpus loaded", logging.Fields{
		"path":       path,
		"patterns":   len(snap.Patterns),
		"categories": len(snap.Categories),
		"sequences":  len(snap.Sequences),
		"warnings":   len(snap.Warnings),
	})

	return snap, nil
}

// wrapReader layers decompression by file extension and reports the
// underlying document format ("json" or "yaml").
func wrapReader(f *os.File, path string) (io.Reader, string, error) {
	name := filepath.Base(path)
	var reader io.Reader = f

	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, "", errors.Wrap(errors.CorpusInvalid, "bad gzip stream", err)
		}
		reader = gz
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, "", errors.Wrap(errors.CorpusInvalid, "bad zstd stream", err)
		}
		reader = zr.IOReadCloser()
		name = strings.TrimSuffix(name, ".zst")
	}

	format := "json"
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		format = "yaml"
	}
	return reader, format, nil
}

// buildSnapshot validates the wire document and assembles the snapshot.
func buildSnapshot(doc *wireDocument) (*Snapshot, error) {
	if len(doc.Patterns) == 0 {
		return nil, errors.New(errors.CorpusInvalid, "corpus document contains no patterns")
	}
	if doc.Meta.TotalPatterns != 0 && doc.Meta.TotalPatterns != len(doc.Patterns) {
		return nil, errors.New(errors.CorpusCountMismatch,
			fmt.Sprintf("metadata declares %d patterns, document contains %d",
				doc.Meta.TotalPatterns, len(doc.Patterns)))
	}

	snap := &Snapshot{
		Meta:      doc.Meta,
		byID:      make(map[string]*Pattern, len(doc.Patterns)),
		byNumber:  make(map[int]*Pattern, len(doc.Patterns)),
		seqByID:   make(map[string]*Sequence),
		catByName: make(map[string]*Category),
	}

	// Categories first: range overlap is structural.
	for i := range doc.Categories {
		wc := &doc.Categories[i]
		if wc.Name == "" {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("category at index %d has no name", i))
		}
		if wc.PatternRange.End < wc.PatternRange.Start {
			return nil, errors.New(errors.CorpusInvalid,
				fmt.Sprintf("category %q has inverted range [%d, %d]", wc.Name, wc.PatternRange.Start, wc.PatternRange.End))
		}
		cat := &Category{
			Name:        wc.Name,
			Description: wc.Description,
			Start:       wc.PatternRange.Start,
			End:         wc.PatternRange.End,
		}
		for _, existing := range snap.Categories {
			if cat.Start <= existing.End && existing.Start <= cat.End {
				return nil, errors.New(errors.CorpusInvalid,
					fmt.Sprintf("category %q range overlaps category %q", cat.Name, existing.Name))
			}
		}
		if _, dup := snap.catByName[cat.Name]; dup {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("duplicate category %q", cat.Name))
		}
		snap.Categories = append(snap.Categories, cat)
		snap.catByName[cat.Name] = cat
	}

	// Patterns: ids and numbers must be unique; text fields may be empty.
	for i, p := range doc.Patterns {
		if p.ID == "" {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("pattern at index %d has no id", i))
		}
		if p.Name == "" {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("pattern %q has no name", p.ID))
		}
		if p.Number < 0 {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("pattern %q has negative number %d", p.ID, p.Number))
		}
		if p.Evidence < 0 || p.Evidence > 2 {
			return nil, errors.New(errors.CorpusInvalid,
				fmt.Sprintf("pattern %q has evidence level %d outside [0, 2]", p.ID, int(p.Evidence)))
		}
		if _, dup := snap.byID[p.ID]; dup {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("duplicate pattern id %q", p.ID))
		}
		if _, dup := snap.byNumber[p.Number]; dup {
			return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("duplicate pattern number %d", p.Number))
		}
		snap.byID[p.ID] = p
		snap.byNumber[p.Number] = p
		snap.Patterns = append(snap.Patterns, p)
	}
	sort.Slice(snap.Patterns, func(i, j int) bool {
		return snap.Patterns[i].Number < snap.Patterns[j].Number
	})

	// Sequences belong to the category that declared them.
	for i := range doc.Categories {
		wc := &doc.Categories[i]
		for _, ws := range wc.Sequences {
			seq := &Sequence{
				ID:       fmt.Sprintf("seq-%d", ws.ID),
				Name:     ws.Name,
				Category: wc.Name,
			}
			if _, dup := snap.seqByID[seq.ID]; dup {
				return nil, errors.New(errors.CorpusInvalid, fmt.Sprintf("duplicate sequence id %q", seq.ID))
			}
			for _, num := range ws.Patterns {
				if p := snap.byNumber[num]; p != nil {
					seq.Patterns = append(seq.Patterns, p.ID)
				} else {
					seq.Missing = append(seq.Missing, num)
				}
			}
			snap.Sequences = append(snap.Sequences, seq)
			snap.seqByID[seq.ID] = seq
		}
	}

	snap.Warnings = checkConsistency(snap)
	return snap, nil
}
