package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MinRows is the row count a table has to exceed to be considered plausible.
const MinRows = 10

var errNoHeader = errors.New("missing header line")

// Attempt describes the outcome of evaluating one candidate.
type Attempt struct {
	Candidate Candidate
	Rows      int
	Accepted  bool
	Err       error
}

// Result is the accepted table.
type Result struct {
	Candidate Candidate
	Rows      []Row
	Attempts  []Attempt
}

// Loader evaluates candidates in order and keeps the first plausible table.
type Loader struct {
	// Candidates defaults to Candidates() when nil.
	Candidates []Candidate
	// OnAttempt, if set, is called after every evaluated candidate.
	OnAttempt func(Attempt)
}

// Load reads path with the default candidate list.
func Load(path string) (*Result, error) {
	return (&Loader{}).Load(path)
}

// Load reads path and returns the first plausible table.
func (l *Loader) Load(path string) (*Result, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: name, Err: err}
	}
	return l.LoadBytes(name, data)
}

// LoadBytes is Load for content that is already in memory.
func (l *Loader) LoadBytes(name string, data []byte) (*Result, error) {
	cands := l.Candidates
	if cands == nil {
		cands = Candidates()
	}
	res := &Result{}
	for _, c := range cands {
		rows, err := c.Parse(data)
		at := Attempt{Candidate: c, Rows: len(rows), Err: err}
		if err == nil && Plausible(rows) {
			at.Accepted = true
		}
		res.Attempts = append(res.Attempts, at)
		if l.OnAttempt != nil {
			l.OnAttempt(at)
		}
		if at.Accepted {
			res.Candidate = c
			res.Rows = rows
			return res, nil
		}
	}
	return nil, &LoadError{File: name}
}

// lineEndings folds CRLF and bare CR into LF; csv.Reader only splits on LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse decodes data with the candidate's encoding, discards the header line
// and repairs every remaining record. Unrecoverable records are skipped. An
// empty first line counts as a missing header.
func (c Candidate) Parse(data []byte) ([]Row, error) {
	text, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	text = lineEndings.Replace(text)
	if text == "" || text[0] == '\n' {
		return nil, errNoHeader
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = c.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if row, ok := Repair(rec, c.Delimiter); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Plausible reports whether rows look like a correctly decoded table: more
// than MinRows rows and at least one non-empty category.
func Plausible(rows []Row) bool {
	if len(rows) <= MinRows {
		return false
	}
	for _, row := range rows {
		if row[FieldCategory] != "" {
			return true
		}
	}
	return false
}
