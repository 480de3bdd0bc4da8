package httpclient

import (
	"encoding/xml"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Codec is the JSON collaborator used to encode request bodies and decode
// response payloads.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default Codec. Object keys match struct fields
// case-insensitively.
type JSONCodec struct {
	api jsoniter.API
}

// NewJSONCodec creates a JSONCodec compatible with encoding/json.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{api: jsoniter.ConfigCompatibleWithStandardLibrary}
}

// Marshal encodes v as JSON.
func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	return c.api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}

// decodeXML reads one XML document from r into v.
func decodeXML(r io.Reader, v any) error {
	return xml.NewDecoder(r).Decode(v)
}
