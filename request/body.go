// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const badBodyTypeMsg = "httpredir/request: invalid type (for body use nil, " +
	"string, []byte, *Body or io.Reader)"

// A Body is a request body which is either resettable or a single-pass
// stream.
//
// A resettable body is held in memory and can be sent any number of
// times, so it survives 307 and 308 redirects. A stream body is read
// directly from its source when the first request is sent; after that
// it is spent, and a 307 or 308 redirect which would need to send it
// again is not followed.
type Body struct {
	b      []byte
	r      io.Reader
	length int64
}

// BytesBody returns a resettable body containing b. The slice is not
// copied, so it must not be modified while the body is in use.
func BytesBody(b []byte) *Body {
	return &Body{b: b, length: int64(len(b))}
}

// StreamBody returns a single-pass body which reads from r. If r is
// also an io.Closer, it is closed by the transport after the first
// request is sent. Parameter length is the number of bytes r will
// produce, or -1 if unknown.
func StreamBody(r io.Reader, length int64) *Body {
	if r == nil {
		panic("httpredir/request: nil stream")
	}
	if length < 0 {
		length = -1
	}
	return &Body{r: r, length: length}
}

// NewBody converts a generic body parameter to a Body.
//
// The body parameter may be nil, or it may be a *Body, string, []byte,
// or io.Reader. The conversion logic is:
//
// • If body is nil, a nil *Body and no error is returned.
//
// • If body is a *Body, it is returned unchanged.
//
// • If body is a string or []byte, a resettable body is returned.
//
// • If body is a *bytes.Buffer, *bytes.Reader or *strings.Reader, its
// unread contents are copied into a resettable body, the same way
// http.NewRequest snapshots those types.
//
// • If body is any other io.Reader, a stream body with unknown length
// is returned.
//
// • If body is any other type, a nil *Body and an error is returned.
func NewBody(body interface{}) (*Body, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case *Body:
		return x, nil
	case string:
		return BytesBody([]byte(x)), nil
	case []byte:
		return BytesBody(x), nil
	case *bytes.Buffer:
		return BytesBody(append([]byte(nil), x.Bytes()...)), nil
	case *bytes.Reader:
		return snapshot(x)
	case *strings.Reader:
		return snapshot(x)
	case io.Reader:
		return StreamBody(x, -1), nil
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}

func snapshot(r io.Reader) (*Body, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return BytesBody(b), nil
}

// Resettable reports whether the body can be sent again after it has
// been sent once. A nil body is resettable.
func (b *Body) Resettable() bool {
	return b == nil || b.r == nil
}

// Len returns the body length in bytes, or -1 if it is unknown. A nil
// body has length zero.
func (b *Body) Len() int64 {
	if b == nil {
		return 0
	}
	return b.length
}

// Bytes returns the contents of a resettable body, and nil for a
// stream body.
func (b *Body) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.b
}

// empty reports whether the body is known to contain nothing.
func (b *Body) empty() bool {
	return b == nil || (b.r == nil && len(b.b) == 0)
}

// reader returns a reader positioned at the start of a resettable
// body, or the underlying stream.
func (b *Body) reader() io.ReadCloser {
	if b.r != nil {
		if rc, ok := b.r.(io.ReadCloser); ok {
			return rc
		}
		return io.NopCloser(b.r)
	}
	return io.NopCloser(bytes.NewReader(b.b))
}
