package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTruncated is returned when fewer bytes than one full record
// remain.
var ErrTruncated = errors.New("utmp: truncated record")

// InvalidTypeError is returned when a record's leading type code is
// not one of the ten known values.
type InvalidTypeError struct {
	Code int16
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("utmp: unknown record type %d", e.Code)
}

// Offsets of the fields whose position is the same in every variant.
// The 2 bytes after the type code are C struct padding.
const (
	typeOff = 0
	pidOff  = 4
	lineOff = 8
	idOff   = 40
	userOff = 44
	hostOff = 76
	exitOff = 332
)

// Layout describes the wire format of one record variant: the total
// record size and the width and position of the ABI-dependent integer
// fields. Decode and Encode are pure; a Layout carries no state.
type Layout struct {
	// Name identifies the variant ("x32", "x64").
	Name string
	// Size is the total record size in bytes.
	Size int

	wordWidth  int // width of session, tv_sec, tv_usec: 4 or 8
	sessionOff int
	tvOff      int
	addrOff    int
}

// Layout32 is the explicit 32-bit layout: 384-byte records with 32-bit
// session and time fields. Every Linux architecture except arm64
// writes this layout.
var Layout32 = Layout{
	Name:       "x32",
	Size:       384,
	wordWidth:  4,
	sessionOff: 336,
	tvOff:      340,
	addrOff:    348,
}

// Layout64 is the explicit 64-bit layout: 400-byte records with 64-bit
// session and time fields, as written on arm64.
var Layout64 = Layout{
	Name:       "x64",
	Size:       400,
	wordWidth:  8,
	sessionOff: 336,
	tvOff:      344,
	addrOff:    360,
}

// Decode converts one record-sized block into an Entry. It fails with
// ErrTruncated when the block is shorter than l.Size and with
// *InvalidTypeError when the type code is unknown. All integer fields
// are read native-endian; no conversion is performed.
func (l Layout) Decode(block []byte) (Entry, error) {
	if len(block) < l.Size {
		return Entry{}, ErrTruncated
	}

	t := EntryType(int16(binary.NativeEndian.Uint16(block[typeOff:])))
	if !t.Valid() {
		return Entry{}, &InvalidTypeError{Code: int16(t)}
	}

	var e Entry
	e.Type = t
	e.Pid = int32(binary.NativeEndian.Uint32(block[pidOff:]))
	copy(e.Line[:], block[lineOff:lineOff+LineSize])
	copy(e.ID[:], block[idOff:idOff+IDSize])
	copy(e.User[:], block[userOff:userOff+NameSize])
	copy(e.Host[:], block[hostOff:hostOff+HostSize])
	e.Exit.Termination = int16(binary.NativeEndian.Uint16(block[exitOff:]))
	e.Exit.Exit = int16(binary.NativeEndian.Uint16(block[exitOff+2:]))

	if l.wordWidth == 8 {
		e.Session = int64(binary.NativeEndian.Uint64(block[l.sessionOff:]))
		e.TimeSec = int64(binary.NativeEndian.Uint64(block[l.tvOff:]))
		e.TimeUsec = int64(binary.NativeEndian.Uint64(block[l.tvOff+8:]))
	} else {
		e.Session = int64(int32(binary.NativeEndian.Uint32(block[l.sessionOff:])))
		e.TimeSec = int64(int32(binary.NativeEndian.Uint32(block[l.tvOff:])))
		e.TimeUsec = int64(int32(binary.NativeEndian.Uint32(block[l.tvOff+4:])))
	}

	for i := range e.Addr {
		e.Addr[i] = int32(binary.NativeEndian.Uint32(block[l.addrOff+i*4:]))
	}

	return e, nil
}

// Encode is the inverse of Decode: it serializes e into a fresh block
// of exactly l.Size bytes. It fails when a session or time value does
// not fit the 32-bit layout's field width. Padding and reserved bytes
// are zero.
func (l Layout) Encode(e Entry) ([]byte, error) {
	if !e.Type.Valid() {
		return nil, &InvalidTypeError{Code: int16(e.Type)}
	}

	block := make([]byte, l.Size)
	binary.NativeEndian.PutUint16(block[typeOff:], uint16(e.Type))
	binary.NativeEndian.PutUint32(block[pidOff:], uint32(e.Pid))
	copy(block[lineOff:], e.Line[:])
	copy(block[idOff:], e.ID[:])
	copy(block[userOff:], e.User[:])
	copy(block[hostOff:], e.Host[:])
	binary.NativeEndian.PutUint16(block[exitOff:], uint16(e.Exit.Termination))
	binary.NativeEndian.PutUint16(block[exitOff+2:], uint16(e.Exit.Exit))

	if l.wordWidth == 8 {
		binary.NativeEndian.PutUint64(block[l.sessionOff:], uint64(e.Session))
		binary.NativeEndian.PutUint64(block[l.tvOff:], uint64(e.TimeSec))
		binary.NativeEndian.PutUint64(block[l.tvOff+8:], uint64(e.TimeUsec))
	} else {
		for _, v := range []int64{e.Session, e.TimeSec, e.TimeUsec} {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("utmp: value %d does not fit %s layout", v, l.Name)
			}
		}
		binary.NativeEndian.PutUint32(block[l.sessionOff:], uint32(int32(e.Session)))
		binary.NativeEndian.PutUint32(block[l.tvOff:], uint32(int32(e.TimeSec)))
		binary.NativeEndian.PutUint32(block[l.tvOff+4:], uint32(int32(e.TimeUsec)))
	}

	for i, w := range e.Addr {
		binary.NativeEndian.PutUint32(block[l.addrOff+i*4:], uint32(w))
	}

	return block, nil
}
