package protocol

import (
	"bytes"
	"errors"
	"sync"

	"github.com/tinylib/msgp/msgp"
)

// ErrUnknownMessageType is returned for values that are not protocol
// messages.
var ErrUnknownMessageType = errors.New("unknown message type")

// Pool of buffers to avoid allocation and ensure thread safety
var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// Marshal serializes a message to msgpack format
func Marshal(v any) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	writer := msgp.NewWriter(buf)

	var err error
	switch msg := v.(type) {
	case *Request:
		err = msg.EncodeMsg(writer)
	case *ClassifyResult:
		err = msg.EncodeMsg(writer)
	case *CheckResult:
		err = msg.EncodeMsg(writer)
	case *Error:
		err = msg.EncodeMsg(writer)
	default:
		return nil, ErrUnknownMessageType
	}
	if err != nil {
		return nil, err
	}

	if err := writer.Flush(); err != nil {
		return nil, err
	}

	// Copy so the pooled buffer is never aliased
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Unmarshal deserializes msgpack data into a message
func Unmarshal(data []byte, v any) error {
	reader := msgp.NewReader(bytes.NewReader(data))

	switch msg := v.(type) {
	case *Request:
		return msg.DecodeMsg(reader)
	case *ClassifyResult:
		return msg.DecodeMsg(reader)
	case *CheckResult:
		return msg.DecodeMsg(reader)
	case *Error:
		return msg.DecodeMsg(reader)
	default:
		return ErrUnknownMessageType
	}
}

// PeekType returns the type and id of an encoded message without decoding
// the rest of it.
func PeekType(data []byte) (typ, id string, err error) {
	var h header
	if err := h.DecodeMsg(msgp.NewReader(bytes.NewReader(data))); err != nil {
		return "", "", err
	}
	return h.Type, h.ID, nil
}

// Decode unmarshals a server message into its concrete type.
func Decode(data []byte) (any, error) {
	typ, _, err := PeekType(data)
	if err != nil {
		return nil, err
	}

	var msg any
	switch typ {
	case TypeClassify, TypeCheck:
		msg = &Request{}
	case TypeClassifyResult:
		msg = &ClassifyResult{}
	case TypeCheckResult:
		msg = &CheckResult{}
	case TypeError:
		msg = &Error{}
	default:
		return nil, ErrUnknownMessageType
	}
	if err := Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
