package tinify

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/shestakovda/errx"
)

type bodyKind uint8

const (
	bodyEmpty bodyKind = iota
	bodyJSON
	bodyRaw
)

// Body is the payload of a request: nothing, a JSON object or raw bytes.
// The zero value sends no body.
type Body struct {
	kind bodyKind
	data map[string]interface{}
	raw  []byte
}

func NoBody() Body { return Body{} }

// JSONBody sends the mapping as a JSON object. An empty mapping sends no
// body at all, not "{}".
func JSONBody(data map[string]interface{}) Body {
	if len(data) == 0 {
		return Body{}
	}

	return Body{kind: bodyJSON, data: data}
}

// RawBody sends data unmodified. Empty data sends no body.
func RawBody(data []byte) Body {
	if len(data) == 0 {
		return Body{}
	}

	return Body{kind: bodyRaw, raw: data}
}

func (b Body) Empty() bool { return b.kind == bodyEmpty }

// reader returns the encoded payload and its content type, nil for no body.
func (b Body) reader() (_ io.Reader, mime string, err error) {
	var buf []byte

	switch b.kind {
	case bodyJSON:
		if buf, err = json.Marshal(b.data); err != nil {
			return nil, "", ErrBadBody.WithReason(err).WithDebug(errx.Debug{
				"keys": len(b.data),
			})
		}

		return bytes.NewReader(buf), MimeJSON, nil
	case bodyRaw:
		return bytes.NewReader(b.raw), "", nil
	default:
		return nil, "", nil
	}
}
