// Package protocol implements the binary event frames the thin client sends
// to the server over WebSocket.
//
// Each WebSocket binary message carries exactly one event:
//
//	[Seq: varint][Type: 1 byte][HID: len-prefixed string]
//	pointer types append [ClientX: svarint][ClientY: svarint]
//
// # Encoding
//
//   - Varint: compact encoding for small integers (protobuf-style)
//   - ZigZag: signed integers encoded as unsigned varints
//   - Length-prefixed: strings prefixed with their varint byte length
//
// An empty HID means the event hit the page background rather than a
// rendered element. A mousedown on "h3" at (5, 10) encodes as
//
//	01 03 02 68 33 0a 14
//
// Decoding is strict: truncated input returns io.ErrUnexpectedEOF and any
// bytes after the event return ErrTrailingBytes.
package protocol
