//go:build !arm64

package codec

// LayoutNative is the layout the build target itself writes. On every
// Linux architecture except arm64 the session and time fields are
// 32 bits wide and a record is 384 bytes.
var LayoutNative = Layout32
