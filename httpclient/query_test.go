package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params Params
		style  QueryStyle
		want   string
	}{
		{"compact single", "/items", P("page", "1"), QueryStyleCompact, "/items?page=1"},
		{"compact multiple", "/items", P("a", "1", "b", "2"), QueryStyleCompact, "/items?a=1&b=2"},
		{"compact empty", "/items", nil, QueryStyleCompact, "/items"},
		{"compact existing query", "/items?x=0", P("page", "1"), QueryStyleCompact, "/items?x=0&page=1"},
		{"compact keeps order", "/s", P("z", "1", "a", "2"), QueryStyleCompact, "/s?z=1&a=2"},
		{"compact no escaping", "/s", P("q", "a b"), QueryStyleCompact, "/s?q=a b"},
		{"legacy single", "/items", P("page", "1"), QueryStyleLegacy, "/items?page=1&"},
		{"legacy multiple", "/items", P("a", "1", "b", "2"), QueryStyleLegacy, "/items?a=1&b=2&"},
		{"legacy empty", "/items", nil, QueryStyleLegacy, "/items?"},
		{"legacy existing query", "/items?x=0", P("page", "1"), QueryStyleLegacy, "/items?x=0&page=1&"},
		{"legacy existing query empty", "/items?x=0", nil, QueryStyleLegacy, "/items?x=0&"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeQuery(tt.path, tt.params, tt.style); got != tt.want {
				t.Errorf("EncodeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestP(t *testing.T) {
	p := P("a", "1", "b")
	if len(p) != 1 || p[0] != (Param{Key: "a", Value: "1"}) {
		t.Errorf("P() = %v, want [{a 1}]", p)
	}
	p = p.Add("c", "3")
	if len(p) != 2 || p[1].Key != "c" {
		t.Errorf("Add() = %v", p)
	}
	if v := p.Values(); v.Get("a") != "1" || v.Get("c") != "3" {
		t.Errorf("Values() = %v", v)
	}
}

func TestEncodeForm(t *testing.T) {
	got := encodeForm(P("name", "a b", "tag", "x&y"))
	want := "name=a+b&tag=x%26y"
	if got != want {
		t.Errorf("encodeForm() = %q, want %q", got, want)
	}
}

func TestGet_LegacyQueryOnTheWire(t *testing.T) {
	var uri string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri = r.RequestURI
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	d := newTestDispatcherWithConfig(t, Config{BaseURL: srv.URL, QueryStyle: QueryStyleLegacy})

	Get[item](context.Background(), d, "/items", P("page", "1"))
	if uri != "/items?page=1&" {
		t.Errorf("RequestURI = %q, want /items?page=1&", uri)
	}

	Get[item](context.Background(), d, "/items", nil)
	if uri != "/items?" {
		t.Errorf("RequestURI = %q, want /items?", uri)
	}
}
