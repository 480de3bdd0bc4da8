package httpclient

import (
	"context"
	"net/http"
)

// Delete sends a DELETE to path. A 2xx body is read as text and then
// unmarshaled into T; an empty body yields the zero value.
func Delete[T any](ctx context.Context, d *Dispatcher, path string) *Envelope[T] {
	c := &call{op: OpDelete, method: http.MethodDelete, target: path}
	return dispatch(ctx, d, c, decodeJSON[T](ctx, d.codec, OpDelete))
}
