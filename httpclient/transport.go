package httpclient

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	"golang.org/x/net/http2"
)

// Doer is the transport collaborator. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// idleCloser is implemented by transports that pool connections.
type idleCloser interface {
	CloseIdleConnections()
}

// newDoer builds the transport selected by cfg. TLS material is read from fs.
func newDoer(cfg *Config, fs afero.Fs) (Doer, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.BuildFS(fs)
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	switch cfg.Transport {
	case TransportResty:
		return NewRestyDoer(resty.NewWithClient(httpClient)), nil
	default:
		return httpClient, nil
	}
}

// RestyDoer adapts a resty client to the Doer interface. Responses are
// returned unparsed so the Dispatcher owns body handling.
type RestyDoer struct {
	client *resty.Client
}

// NewRestyDoer wraps an existing resty client.
func NewRestyDoer(client *resty.Client) *RestyDoer {
	return &RestyDoer{client: client}
}

// Do sends req through resty.
func (r *RestyDoer) Do(req *http.Request) (*http.Response, error) {
	rr := r.client.R().
		SetContext(req.Context()).
		SetDoNotParseResponse(true)
	rr.Header = req.Header.Clone()
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}
	return resp.RawResponse, nil
}

// CloseIdleConnections releases pooled connections.
func (r *RestyDoer) CloseIdleConnections() {
	r.client.GetClient().CloseIdleConnections()
}
