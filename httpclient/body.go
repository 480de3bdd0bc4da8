package httpclient

import (
	"context"
	"errors"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

var errNilMultipart = errors.New("multipart payload is nil")

// Post sends body as JSON to path and decodes a 2xx JSON response into T.
func Post[T any](ctx context.Context, d *Dispatcher, path string, body any) *Envelope[T] {
	return dispatch(ctx, d, jsonCall(d, OpPost, http.MethodPost, path, body), decodeJSON[T](ctx, d.codec, OpPost))
}

// PostNoContent sends body as JSON to path. The response body is read only
// when the status is not 2xx.
func PostNoContent(ctx context.Context, d *Dispatcher, path string, body any) *Result {
	return dispatch[NoContent](ctx, d, jsonCall(d, OpPost, http.MethodPost, path, body), nil)
}

// Put sends body as JSON to path and decodes a 2xx JSON response into T.
func Put[T any](ctx context.Context, d *Dispatcher, path string, body any) *Envelope[T] {
	return dispatch(ctx, d, jsonCall(d, OpPut, http.MethodPut, path, body), decodeJSON[T](ctx, d.codec, OpPut))
}

// Patch sends body as JSON to path and decodes a 2xx JSON response into T.
func Patch[T any](ctx context.Context, d *Dispatcher, path string, body any) *Envelope[T] {
	return dispatch(ctx, d, jsonCall(d, OpPatch, http.MethodPatch, path, body), decodeJSON[T](ctx, d.codec, OpPatch))
}

// PatchNoContent sends body as JSON to path. The response body is read only
// when the status is not 2xx.
func PatchNoContent(ctx context.Context, d *Dispatcher, path string, body any) *Result {
	return dispatch[NoContent](ctx, d, jsonCall(d, OpPatch, http.MethodPatch, path, body), nil)
}

// PostForm sends fields as application/x-www-form-urlencoded, in order, and
// decodes a 2xx JSON response into T.
func PostForm[T any](ctx context.Context, d *Dispatcher, path string, fields Params) *Envelope[T] {
	c := &call{
		op:          OpPostForm,
		method:      http.MethodPost,
		target:      path,
		contentType: contentTypeForm,
		payload: func() ([]byte, error) {
			return []byte(encodeForm(fields)), nil
		},
	}
	return dispatch(ctx, d, c, decodeJSON[T](ctx, d.codec, OpPostForm))
}

// PostMultipart sends a pre-built multipart payload and decodes a 2xx JSON
// response into T. A nil payload fails locally without a request.
func PostMultipart[T any](ctx context.Context, d *Dispatcher, path string, mp *Multipart) *Envelope[T] {
	if mp == nil {
		return dispatch(ctx, d, &call{
			op:     OpPostMultipart,
			method: http.MethodPost,
			target: path,
			payload: func() ([]byte, error) {
				return nil, newError(OpPostMultipart, ErrCodeRequest, errNilMultipart)
			},
		}, decodeJSON[T](ctx, d.codec, OpPostMultipart))
	}
	c := &call{
		op:          OpPostMultipart,
		method:      http.MethodPost,
		target:      path,
		contentType: mp.ContentType,
		payload: func() ([]byte, error) {
			return mp.Body, nil
		},
	}
	return dispatch(ctx, d, c, decodeJSON[T](ctx, d.codec, OpPostMultipart))
}

func jsonCall(d *Dispatcher, op, method, path string, body any) *call {
	return &call{
		op:          op,
		method:      method,
		target:      path,
		contentType: contentTypeJSON,
		payload: func() ([]byte, error) {
			return d.codec.Marshal(body)
		},
	}
}
