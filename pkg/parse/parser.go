// Package parse streams decoded entries out of utmp/wtmp files.
//
// A Parser pulls one record-sized block at a time from its source and
// hands it to the codec, so a file is never materialized unless the
// caller collects it. The three layout variants share one parser; the
// Native/32/64 constructors differ only in the codec.Layout they bind.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vardr/utmp/pkg/codec"
)

// Parser reads records sequentially from a byte source. It is not safe
// for concurrent use; the source is owned by one parser at a time.
type Parser struct {
	r      io.Reader
	file   *os.File // non-nil only when the parser opened the path itself
	layout codec.Layout
	buf    []byte
	done   bool
}

// NewParser returns a parser over r using the native layout. The
// caller retains ownership of r and of closing it.
func NewParser(r io.Reader) *Parser { return newParser(r, codec.LayoutNative) }

// NewParser32 returns a parser over r using the explicit 32-bit layout.
func NewParser32(r io.Reader) *Parser { return newParser(r, codec.Layout32) }

// NewParser64 returns a parser over r using the explicit 64-bit layout.
func NewParser64(r io.Reader) *Parser { return newParser(r, codec.Layout64) }

// OpenFile opens path and returns a parser over it using the native
// layout. The parser owns the file handle: it is closed when the
// stream ends and by Close.
func OpenFile(path string) (*Parser, error) { return openFile(path, codec.LayoutNative) }

// OpenFile32 is OpenFile with the explicit 32-bit layout.
func OpenFile32(path string) (*Parser, error) { return openFile(path, codec.Layout32) }

// OpenFile64 is OpenFile with the explicit 64-bit layout.
func OpenFile64(path string) (*Parser, error) { return openFile(path, codec.Layout64) }

func newParser(r io.Reader, layout codec.Layout) *Parser {
	return &Parser{
		r:      r,
		layout: layout,
		buf:    make([]byte, layout.Size),
	}
}

func openFile(path string, layout codec.Layout) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p := newParser(bufio.NewReader(f), layout)
	p.file = f
	return p, nil
}

// Read returns the next decode result. It returns io.EOF once the
// source is exhausted at a record boundary; an exhausted parser stays
// exhausted.
//
// A trailing partial record yields codec.ErrTruncated exactly once and
// ends the stream, as does a failed read from the source. A decode
// error (*codec.InvalidTypeError) is reported for that record only:
// the caller may keep reading past it.
func (p *Parser) Read() (codec.Entry, error) {
	if p.done {
		return codec.Entry{}, io.EOF
	}

	_, err := io.ReadFull(p.r, p.buf)
	switch {
	case err == io.EOF:
		p.finish()
		return codec.Entry{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		p.finish()
		return codec.Entry{}, codec.ErrTruncated
	case err != nil:
		p.finish()
		return codec.Entry{}, fmt.Errorf("read record: %w", err)
	}

	return p.layout.Decode(p.buf)
}

// finish marks the stream terminal and releases an owned file handle.
func (p *Parser) finish() {
	p.done = true
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
}

// Close releases the file handle when the parser owns one and marks
// the parser exhausted. It is idempotent and never closes a
// caller-supplied reader.
func (p *Parser) Close() error {
	p.done = true
	if p.file == nil {
		return nil
	}
	f := p.file
	p.file = nil
	return f.Close()
}

// ReadAll collects the remaining entries in order, stopping at the
// first error. A clean end of stream is not an error.
func (p *Parser) ReadAll() ([]codec.Entry, error) {
	var entries []codec.Entry
	for {
		entry, err := p.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// Result is one element of a non-short-circuiting drain: either a
// decoded entry or the error that took its place.
type Result struct {
	Entry codec.Entry
	Err   error
}

// Results drains the parser to the end of the stream, collecting every
// decode result in order. Unlike ReadAll it does not stop at errors: a
// corrupt record is one errored Result and its neighbors decode
// normally. Terminal conditions (a trailing partial record, a read
// failure) still end the stream after their one Result.
func (p *Parser) Results() []Result {
	var results []Result
	for {
		entry, err := p.Read()
		if err == io.EOF {
			return results
		}
		results = append(results, Result{Entry: entry, Err: err})
	}
}
