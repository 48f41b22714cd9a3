package protocol

import "errors"

// Protocol-level decode failures. Callers that need to distinguish a
// malformed stream from a transport failure should compare against these
// with errors.Is.
var (
	ErrVarIntTooLarge  = errors.New("protocol: varint is too large")
	ErrVarLongTooLarge = errors.New("protocol: varlong is too large")
	ErrStringTooLong   = errors.New("protocol: string exceeds maximum length")
	ErrInvalidUTF8     = errors.New("protocol: invalid utf-8 in string")
	ErrTruncated       = errors.New("protocol: frame truncated")
	ErrPeerClosed      = errors.New("protocol: connection closed by peer")
)

// maxStringBytes and maxStringChars bound the length-prefixed "utf" type,
// per the wire spec: a server advertising more than this is malformed or
// hostile, not merely unusual.
const (
	maxStringBytes = 131068
	maxStringChars = 32767
)
