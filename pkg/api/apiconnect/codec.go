// Package apiconnect provides Connect handlers and clients for the settleup
// services, carrying the messages of package api as JSON.
package apiconnect

import (
	"encoding/json"
	"strings"

	"connectrpc.com/connect"
)

// Codec names, matching the content types Connect accepts for JSON. Connect
// registers its protobuf JSON codec under both, so both are overridden.
const (
	codecName        = "json"
	codecNameCharset = "json; charset=utf-8"
)

// Codec serializes the plain api message structs with encoding/json.
// The zero value is registered as "json".
type Codec struct {
	name string
}

func (c Codec) Name() string {
	if c.name == "" {
		return codecName
	}
	return c.name
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	// An empty body is a valid empty message
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// handlerOptions appends the JSON codecs so they replace Connect's protobuf
// JSON codecs for both content type spellings.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(append([]connect.HandlerOption{}, opts...),
		connect.WithCodec(Codec{}),
		connect.WithCodec(Codec{name: codecNameCharset}),
	)
}

// clientOptions appends the JSON codec so it is the one used for requests.
// A client sends with a single codec, so only plain "json" is needed.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append(append([]connect.ClientOption{}, opts...), connect.WithCodec(Codec{}))
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
