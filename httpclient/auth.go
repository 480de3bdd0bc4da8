package httpclient

import "encoding/base64"

// AddBearerToken adds Authorization: Bearer <token> to the default headers.
func (d *Dispatcher) AddBearerToken(token string) {
	d.AddHeader("Authorization", "Bearer "+token)
}

// AddBasicAuth adds an Authorization: Basic header built from the
// credentials.
func (d *Dispatcher) AddBasicAuth(username, password string) {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	d.AddHeader("Authorization", "Basic "+cred)
}

// AddAPIKey adds an API key header. An empty name defaults to X-API-Key.
func (d *Dispatcher) AddAPIKey(name, key string) {
	if name == "" {
		name = "X-API-Key"
	}
	d.AddHeader(name, key)
}
