package parse

import (
	"bytes"

	"github.com/vardr/utmp/pkg/codec"
)

// ParseFile opens path and collects every entry using the native
// layout, stopping at the first error.
func ParseFile(path string) ([]codec.Entry, error) {
	return parseFile(path, codec.LayoutNative)
}

// ParseFile32 is ParseFile with the explicit 32-bit layout.
func ParseFile32(path string) ([]codec.Entry, error) {
	return parseFile(path, codec.Layout32)
}

// ParseFile64 is ParseFile with the explicit 64-bit layout.
func ParseFile64(path string) ([]codec.Entry, error) {
	return parseFile(path, codec.Layout64)
}

// ParseBytes collects every entry from an in-memory buffer using the
// native layout, stopping at the first error.
func ParseBytes(data []byte) ([]codec.Entry, error) {
	return newParser(bytes.NewReader(data), codec.LayoutNative).ReadAll()
}

// ParseBytes32 is ParseBytes with the explicit 32-bit layout.
func ParseBytes32(data []byte) ([]codec.Entry, error) {
	return newParser(bytes.NewReader(data), codec.Layout32).ReadAll()
}

// ParseBytes64 is ParseBytes with the explicit 64-bit layout.
func ParseBytes64(data []byte) ([]codec.Entry, error) {
	return newParser(bytes.NewReader(data), codec.Layout64).ReadAll()
}

func parseFile(path string, layout codec.Layout) ([]codec.Entry, error) {
	p, err := openFile(path, layout)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ReadAll()
}
