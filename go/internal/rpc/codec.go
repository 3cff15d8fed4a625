// Package rpc holds the connect plumbing shared by every service: the JSON
// codec and the default handler and client options.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is registered for the application/json content type.
const CodecName = "json"

// JSONCodec encodes connect messages as plain JSON structs.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// HandlerOptions prepends the JSON codec to opts.
func HandlerOptions(opts ...connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// ClientOptions prepends the JSON codec to opts.
func ClientOptions(opts ...connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
