// Package codec decodes the fixed-size binary records of utmp/wtmp
// session-accounting files.
//
// # Record Format
//
// Every record is one fixed-size block. Field order is the glibc
// struct utmp layout:
//
//	[type(2)][pad(2)][pid(4)][line(32)][id(4)][user(32)][host(256)]
//	[exit(2+2)][session][tv_sec][tv_usec][addr_v6(4x4)][unused(20)]
//
// The session, tv_sec and tv_usec fields vary in width by ABI, which
// gives three layout variants:
//
//   - Layout32: 32-bit words, 384 bytes per record (every Linux
//     architecture except arm64)
//   - Layout64: 64-bit words, 400 bytes per record (arm64, which also
//     pads the tail to an 8-byte boundary)
//   - LayoutNative: whichever of the two matches the build target
//
// All multi-byte integers are read in the byte order of the machine the
// file was written on. Accounting files are conventionally read on the
// machine that wrote them, so no endianness conversion is performed.
//
// # Text Fields
//
// The line, id, user and host fields are fixed-capacity byte arrays
// that may or may not carry a NUL terminator: a value that exactly
// fills its field has none. Entry keeps the raw arrays and the string
// accessors stop at the first NUL or at capacity, whichever comes
// first.
//
// # Addresses
//
// The address field is four 32-bit words. An IPv4 address occupies only
// the first word and an IPv6 address all four, but the format does not
// record which was written. Entry.Addr exposes the raw words;
// Entry.IP applies the conventional zero-tail heuristic.
//
// # Errors
//
// Decode never guesses: a block shorter than the record size is
// ErrTruncated, and a type code outside the ten known values is an
// *InvalidTypeError. Both leave the input untouched.
package codec
