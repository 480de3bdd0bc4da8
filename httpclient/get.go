package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// Operation labels. A local failure message always starts with
// "<label> Error: ".
const (
	OpGet           = "GetAsync"
	OpGetText       = "GetStringAsync"
	OpGetXML        = "GetXmlAsync"
	OpDownload      = "DownloadFileAsync"
	OpPost          = "PostAsync"
	OpPostForm      = "PostFormAsync"
	OpPostMultipart = "PostMultipartAsync"
	OpPut           = "PutAsync"
	OpPatch         = "PatchAsync"
	OpDelete        = "DeleteAsync"
)

// Get sends a GET to path with params and decodes a 2xx JSON body into T.
func Get[T any](ctx context.Context, d *Dispatcher, path string, params Params) *Envelope[T] {
	return dispatch(ctx, d, getCall(OpGet, path, params), decodeJSON[T](ctx, d.codec, OpGet))
}

// GetText sends a GET to path with params and returns a 2xx body verbatim.
func GetText(ctx context.Context, d *Dispatcher, path string, params Params) *Envelope[string] {
	return dispatch(ctx, d, getCall(OpGetText, path, params), func(body io.Reader) (string, error) {
		data, err := io.ReadAll(body)
		if err != nil {
			return "", transportError(ctx, OpGetText, err)
		}
		return string(data), nil
	})
}

// GetXML sends a GET to path with params and decodes a 2xx XML body into T.
func GetXML[T any](ctx context.Context, d *Dispatcher, path string, params Params) *Envelope[T] {
	return dispatch(ctx, d, getCall(OpGetXML, path, params), func(body io.Reader) (T, error) {
		var data T
		if err := decodeXML(body, &data); err != nil && !errors.Is(err, io.EOF) {
			return data, err
		}
		return data, nil
	})
}

func getCall(op, path string, params Params) *call {
	return &call{
		op:     op,
		method: http.MethodGet,
		target: path,
		query:  true,
		params: params,
	}
}

// decodeJSON reads the whole body and unmarshals it into T. Content after
// the first value fails the decode. An empty body yields the zero value.
func decodeJSON[T any](ctx context.Context, codec Codec, op string) decodeFunc[T] {
	return func(body io.Reader) (T, error) {
		var data T
		raw, err := io.ReadAll(body)
		if err != nil {
			return data, transportError(ctx, op, err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return data, nil
		}
		err = codec.Unmarshal(raw, &data)
		return data, err
	}
}
