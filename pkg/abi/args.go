// Package abi implements the positional binary calling convention of the
// ledger: each operation takes an ordered, typed argument list of UTF-8
// strings and unsigned 64-bit integers, and value-returning operations
// produce a result encoded the same way. Strings are encoded as a
// little-endian uint32 byte length followed by the bytes; uint64 values
// are little-endian. Arguments must be decoded in the exact declared
// order and cardinality; a malformed or missing argument fails the call
// rather than proceeding with a default.
package abi // import "github.com/openpress/content-ledger/pkg/abi"

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBadArguments is returned by the dispatcher when an argument payload
// is malformed or does not match the operation's declared signature
var ErrBadArguments = errors.New("malformed or missing argument")

// ErrUnknownOperation is returned by the dispatcher for an operation name
// it does not route
var ErrUnknownOperation = errors.New("unknown operation")

// maxStringLen bounds a single decoded string argument. Anything larger
// is a framing error, not a legitimate argument.
const maxStringLen = 1 << 20

// NewEncoder creates an empty argument/result encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encoder builds a positional binary payload field by field
type Encoder struct {
	buf bytes.Buffer
}

// WriteString appends a string field
func (e *Encoder) WriteString(value string) {
	lenBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBytes, uint32(len(value)))
	e.buf.Write(lenBytes)
	e.buf.WriteString(value)
}

// WriteUint64 appends an unsigned 64-bit integer field
func (e *Encoder) WriteUint64(value uint64) {
	valueBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(valueBytes, value)
	e.buf.Write(valueBytes)
}

// WriteBool appends a boolean field, encoded as a uint64 0 or 1
func (e *Encoder) WriteBool(value bool) {
	if value {
		e.WriteUint64(1)
	} else {
		e.WriteUint64(0)
	}
}

// Bytes returns the encoded payload
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// NewDecoder creates a decoder over an encoded payload
func NewDecoder(payload []byte) *Decoder {
	return &Decoder{payload: payload}
}

// Decoder reads a positional binary payload field by field
type Decoder struct {
	payload []byte
	offset  int
}

// ReadString decodes the next field as a string
func (d *Decoder) ReadString() (string, error) {
	if d.remaining() < 4 {
		return "", fmt.Errorf("Short read on string length: %v bytes remaining", d.remaining())
	}
	length := int(binary.LittleEndian.Uint32(d.payload[d.offset : d.offset+4]))
	if length > maxStringLen {
		return "", fmt.Errorf("String length %v exceeds maximum", length)
	}
	d.offset += 4
	if d.remaining() < length {
		return "", fmt.Errorf("Short read on string body: want %v, have %v", length, d.remaining())
	}
	value := string(d.payload[d.offset : d.offset+length])
	d.offset += length
	return value, nil
}

// ReadUint64 decodes the next field as an unsigned 64-bit integer
func (d *Decoder) ReadUint64() (uint64, error) {
	if d.remaining() < 8 {
		return 0, fmt.Errorf("Short read on uint64: %v bytes remaining", d.remaining())
	}
	value := binary.LittleEndian.Uint64(d.payload[d.offset : d.offset+8])
	d.offset += 8
	return value, nil
}

// Finish verifies the payload was fully consumed. Trailing bytes mean the
// caller encoded more arguments than the operation declares.
func (d *Decoder) Finish() error {
	if d.remaining() != 0 {
		return fmt.Errorf("Trailing bytes in payload: %v remaining", d.remaining())
	}
	return nil
}

func (d *Decoder) remaining() int {
	return len(d.payload) - d.offset
}
