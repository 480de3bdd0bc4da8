// Package httpclient provides a Dispatcher: an HTTP client facade that sends
// GET, POST, PUT, PATCH and DELETE requests and file downloads against a
// base address and folds every outcome into an Envelope.
//
// Operations never return a Go error. A network failure, a non-2xx status
// and a successful typed payload all come back as an Envelope, so callers
// check IsSuccess before trusting Data:
//
//	d, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://api.example.com",
//	    BearerToken: "my-token",
//	})
//
//	env := httpclient.Get[User](ctx, d, "/users/123", nil)
//	if env.IsSuccess {
//	    fmt.Println(env.Data.Name)
//	} else {
//	    fmt.Println(env.StatusCode, env.Message)
//	}
//
// # Failures
//
// A local failure (connection refused, DNS, TLS, malformed URL, undecodable
// payload) sets Err to an *Error and Message to "<label> Error: <cause>",
// where label is one of the Op constants. A remote non-success keeps the
// status code and puts the raw body in Message; Err stays nil.
//
// Envelope.Problem converts either kind into an *errors.AppError with a
// machine-readable code, for callers that report failures upstream.
//
// # Transports
//
// The transport is any Doer. New builds a *http.Client (with optional TLS
// and HTTP/2) or a resty client depending on Config.Transport; WithDoer
// injects a custom one.
package httpclient
