package httpclient

import (
	"net/url"
	"strings"
)

// Param is a single query or form parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of parameters.
type Params []Param

// P builds Params from alternating key-value pairs. A trailing key without
// a value is ignored.
//
//	httpclient.P("page", "1", "size", "20")
func P(kvs ...string) Params {
	params := make(Params, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		params = append(params, Param{Key: kvs[i], Value: kvs[i+1]})
	}
	return params
}

// Add appends a parameter and returns the extended list.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Values converts the parameters to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, param := range p {
		v.Add(param.Key, param.Value)
	}
	return v
}

// EncodeQuery appends params to path as key=value pairs. Values are not
// percent-encoded; callers pre-encode reserved characters. The separator is
// "?" unless path already carries a query, in which case it is "&".
func EncodeQuery(path string, params Params, style QueryStyle) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(path)

	if style == QueryStyleLegacy {
		b.WriteString(sep)
		for _, param := range params {
			b.WriteString(param.Key)
			b.WriteByte('=')
			b.WriteString(param.Value)
			b.WriteByte('&')
		}
		return b.String()
	}

	if len(params) == 0 {
		return path
	}
	b.WriteString(sep)
	for i, param := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(param.Key)
		b.WriteByte('=')
		b.WriteString(param.Value)
	}
	return b.String()
}

// encodeForm renders params as application/x-www-form-urlencoded, keeping
// the caller's order.
func encodeForm(params Params) string {
	var b strings.Builder
	for i, param := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}
