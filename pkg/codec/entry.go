package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// Byte capacities of the fixed text fields. Shared by every layout
// variant; they match the glibc UT_LINESIZE/UT_NAMESIZE/UT_HOSTSIZE
// constants.
const (
	LineSize = 32
	IDSize   = 4
	NameSize = 32
	HostSize = 256
)

// EntryType identifies what class of event a record represents. The
// set is closed: codes outside [Empty, Accounting] are a decode error.
type EntryType int16

const (
	// Empty marks a record that carries no valid information.
	Empty EntryType = iota
	// RunLevel records a change in system run-level (see init(8)).
	RunLevel
	// BootTime records the time of system boot.
	BootTime
	// NewTime records the time after a system clock change.
	NewTime
	// OldTime records the time before a system clock change.
	OldTime
	// InitProcess marks a process spawned by init(8).
	InitProcess
	// LoginProcess marks the session leader of a user login.
	LoginProcess
	// UserProcess marks a normal logged-in user process.
	UserProcess
	// DeadProcess marks a terminated process.
	DeadProcess
	// Accounting is reserved by the format and not used on Linux.
	Accounting
)

// Valid reports whether t is one of the ten known record types.
func (t EntryType) Valid() bool {
	return t >= Empty && t <= Accounting
}

// String returns the conventional utmp(5) name of the type.
func (t EntryType) String() string {
	switch t {
	case Empty:
		return "EMPTY"
	case RunLevel:
		return "RUN_LVL"
	case BootTime:
		return "BOOT_TIME"
	case NewTime:
		return "NEW_TIME"
	case OldTime:
		return "OLD_TIME"
	case InitProcess:
		return "INIT_PROCESS"
	case LoginProcess:
		return "LOGIN_PROCESS"
	case UserProcess:
		return "USER_PROCESS"
	case DeadProcess:
		return "DEAD_PROCESS"
	case Accounting:
		return "ACCOUNTING"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int16(t))
	}
}

// ExitStatus holds the termination and exit codes of a DeadProcess
// record. Not used by Linux init.
type ExitStatus struct {
	Termination int16
	Exit        int16
}

// Entry is one decoded record. Every field is always decoded,
// regardless of Type; Type determines which of them carry meaning.
//
// Text fields keep their raw on-disk bytes; use the *String accessors
// for the NUL-trimmed form. Session and the time fields are widened to
// int64 so the same Entry serves both the 32- and 64-bit layouts.
type Entry struct {
	Type EntryType
	Pid  int32
	Line [LineSize]byte
	ID   [IDSize]byte
	User [NameSize]byte
	Host [HostSize]byte
	Exit ExitStatus
	// Session is the session ID (getsid(2)) used for windowing.
	Session int64
	// TimeSec and TimeUsec are the entry timestamp, split as on disk.
	TimeSec  int64
	TimeUsec int64
	// Addr is the remote address as four raw 32-bit words. An IPv4
	// address uses only Addr[0]; the format does not say which form
	// was written.
	Addr [4]int32
}

// LineString returns the tty device name.
func (e *Entry) LineString() string { return cstring(e.Line[:]) }

// IDString returns the terminal name suffix or inittab(5) ID.
func (e *Entry) IDString() string { return cstring(e.ID[:]) }

// UserString returns the login name.
func (e *Entry) UserString() string { return cstring(e.User[:]) }

// HostString returns the remote hostname, or the kernel version for
// run-level records.
func (e *Entry) HostString() string { return cstring(e.Host[:]) }

// Time returns the entry timestamp in UTC.
func (e *Entry) Time() time.Time {
	return time.Unix(e.TimeSec, e.TimeUsec*1000).UTC()
}

// IP returns the remote address. The on-disk format does not
// distinguish IPv4 from IPv6, so this applies the conventional
// heuristic: if words 1..3 are zero the address is treated as IPv4.
// Callers that need the raw words should read Addr directly.
func (e *Entry) IP() net.IP {
	b := make(net.IP, 16)
	for i, w := range e.Addr {
		binary.NativeEndian.PutUint32(b[i*4:], uint32(w))
	}
	if bytes.Equal(b[4:], net.IPv6zero[4:]) {
		return b[:4]
	}
	return b
}

// cstring returns the bytes before the first NUL, or all of b when no
// NUL is present (a field that exactly fills its capacity has no
// terminator). Bytes after the NUL are ignored, not validated.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
