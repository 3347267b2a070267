//go:build arm64

package codec

// LayoutNative is the layout the build target itself writes. arm64 is
// the one Linux architecture with 64-bit session and time fields, at
// 400 bytes per record.
var LayoutNative = Layout64
