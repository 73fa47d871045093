package corpus

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer serializes a Dataset to the on-disk corpus layout: a flat corpus
// CSV, a metadata index CSV, an LDA-C bag-of-words file with its vocabulary,
// and a dictionary listing. File names carry the run date.
type Writer struct {
	OutDir string
	Name   string
	Date   time.Time
}

// NewWriter creates a Writer for the given directory and corpus name. The
// zero Date means today.
func NewWriter(outDir, name string) *Writer {
	return &Writer{OutDir: outDir, Name: name}
}

func (w *Writer) stamp() string {
	d := w.Date
	if d.IsZero() {
		d = time.Now()
	}
	return d.Format("2006-01-02")
}

func (w *Writer) path(suffix string) string {
	return filepath.Join(w.OutDir, w.Name+"_"+w.stamp()+suffix)
}

func (w *Writer) indexPath() string {
	return filepath.Join(w.OutDir, fmt.Sprintf("%s_index_%s.csv", w.Name, w.stamp()))
}

// Write serializes the dataset into OutDir.
func (w *Writer) Write(ds *Dataset) error {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := w.writeCorpusCSV(ds); err != nil {
		return err
	}
	if err := w.writeIndexCSV(ds); err != nil {
		return err
	}
	if err := w.writeLDAC(ds); err != nil {
		return err
	}
	return w.writeDictionary(ds)
}

func (w *Writer) writeCorpusCSV(ds *Dataset) (err error) {
	f, err := os.Create(w.path(".csv"))
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer func() { err = closeFile(f, err) }()

	cw := csv.NewWriter(f)
	for _, row := range ds.CorpusRow {
		if werr := cw.Write([]string{row}); werr != nil {
			return fmt.Errorf("write corpus row: %w", werr)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeIndexCSV(ds *Dataset) (err error) {
	f, err := os.Create(w.indexPath())
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer func() { err = closeFile(f, err) }()

	cw := csv.NewWriter(f)
	if werr := cw.Write(ds.Header); werr != nil {
		return fmt.Errorf("write index header: %w", werr)
	}
	for _, row := range ds.Index {
		if werr := cw.Write(row); werr != nil {
			return fmt.Errorf("write index row: %w", werr)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeLDAC writes the bag-of-words corpus in Blei's LDA-C format: one line
// per document, "N id:count ...", with the vocabulary in a sibling file.
func (w *Writer) writeLDAC(ds *Dataset) (err error) {
	f, err := os.Create(w.path(".lda-c"))
	if err != nil {
		return fmt.Errorf("create lda-c file: %w", err)
	}
	defer func() { err = closeFile(f, err) }()

	bw := bufio.NewWriter(f)
	for _, doc := range ds.Documents {
		fmt.Fprintf(bw, "%d", len(doc))
		for _, e := range doc {
			fmt.Fprintf(bw, " %d:%d", e.ID, e.Count)
		}
		fmt.Fprintln(bw)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush lda-c file: %w", err)
	}

	vf, err := os.Create(w.path(".lda-c.vocab"))
	if err != nil {
		return fmt.Errorf("create vocab file: %w", err)
	}
	defer func() { err = closeFile(vf, err) }()

	vw := bufio.NewWriter(vf)
	for id := 0; id < ds.Dict.Len(); id++ {
		fmt.Fprintln(vw, ds.Dict.Word(id))
	}
	return vw.Flush()
}

// writeDictionary writes the word dictionary: document count on the first
// line, then one "id<TAB>word<TAB>docfreq" line per word.
func (w *Writer) writeDictionary(ds *Dataset) (err error) {
	f, err := os.Create(w.path(".lda-c.dic"))
	if err != nil {
		return fmt.Errorf("create dictionary file: %w", err)
	}
	defer func() { err = closeFile(f, err) }()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "%d\n", ds.Dict.NumDocs())
	for id := 0; id < ds.Dict.Len(); id++ {
		fmt.Fprintf(bw, "%d\t%s\t%d\n", id, ds.Dict.Word(id), ds.Dict.DocFreq(id))
	}
	return bw.Flush()
}

func closeFile(f *os.File, err error) error {
	if cerr := f.Close(); cerr != nil && err == nil {
		return fmt.Errorf("close %s: %w", f.Name(), cerr)
	}
	return err
}
