// Package rpc defines the taskmarket.v1 Connect services: procedure names,
// wire messages, handlers and clients. Messages are plain Go structs carried
// with a strict JSON codec.
package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec is a JSON codec that rejects unknown fields, so requests naming a
// field the message does not declare fail with InvalidArgument.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after %T", v)
	}
	return nil
}

// WithJSON makes handlers and clients use Codec.
func WithJSON() connect.Option {
	return connect.WithCodec(Codec{})
}
