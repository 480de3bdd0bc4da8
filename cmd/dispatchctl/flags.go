package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/dispatch/httpclient"
	"github.com/kbukum/dispatch/validation"
)

// Commands and the number of positional arguments each takes.
var commandArgs = map[string]int{
	"get":      1,
	"text":     1,
	"delete":   1,
	"download": 2,
	"post":     1,
	"put":      1,
	"patch":    1,
	"form":     1,
}

// options holds the parsed command line.
type options struct {
	configFile     string
	envFile        string
	baseURL        string
	token          string
	headers        []string
	params         []string
	data           string
	output         string
	transport      string
	timeout        time.Duration
	includeHeaders bool
	showVersion    bool

	command string
	args    []string
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVarP(&opts.configFile, "config", "c", "", "path to config.yml")
	fs.StringVar(&opts.envFile, "env-file", "", "path to a .env file")
	fs.StringVarP(&opts.baseURL, "base-url", "b", "", "base address joined with relative paths")
	fs.StringVarP(&opts.token, "token", "t", "", "bearer token")
	fs.StringArrayVarP(&opts.headers, "header", "H", nil, "default header as name=value (repeatable)")
	fs.StringArrayVarP(&opts.params, "param", "p", nil, "query or form parameter as key=value (repeatable)")
	fs.StringVarP(&opts.data, "data", "d", "", "JSON request body for post, put and patch")
	fs.StringVarP(&opts.output, "output", "o", "", "output format: json or yaml")
	fs.StringVar(&opts.transport, "transport", "", "transport: net/http or resty")
	fs.DurationVar(&opts.timeout, "timeout", 0, "transport timeout")
	fs.BoolVarP(&opts.includeHeaders, "include-headers", "i", false, "include response headers in the output")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: %s [flags] <command> <path> [dest]\n\n", serviceName)
		_, _ = fmt.Fprintf(stderr, "Commands: %s\n\nFlags:\n", strings.Join(commandNames(), ", "))
		fs.PrintDefaults()
	}
	return fs
}

func commandNames() []string {
	names := make([]string, 0, len(commandArgs))
	for name := range commandArgs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// parseArgs parses and validates the command line.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.showVersion {
		return opts, nil
	}

	rest := fs.Args()
	v := validation.New()
	if len(rest) == 0 {
		v.Required("command", "")
	} else {
		opts.command, opts.args = rest[0], rest[1:]
		v.OneOf("command", opts.command, commandNames())
		if want, ok := commandArgs[opts.command]; ok {
			v.Custom(len(opts.args) == want, "args",
				fmt.Sprintf("%s takes %d argument(s), got %d", opts.command, want, len(opts.args)))
		}
	}
	v.OneOf("output", opts.output, []string{OutputJSON, OutputYAML})
	v.OneOf("transport", opts.transport, []string{string(httpclient.TransportNetHTTP), string(httpclient.TransportResty)})
	for _, h := range opts.headers {
		v.KeyValue("header", h)
	}
	for _, p := range opts.params {
		v.KeyValue("param", p)
	}
	if opts.data != "" {
		v.Custom(slices.Contains([]string{"post", "put", "patch"}, opts.command), "data",
			"only post, put and patch take a body")
	}

	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}
	return opts, nil
}

// apply overrides cfg with the flags that were set.
func (o *options) apply(cfg *Config) {
	if o.baseURL != "" {
		cfg.HTTP.BaseURL = o.baseURL
	}
	if o.token != "" {
		cfg.HTTP.BearerToken = o.token
	}
	for _, h := range o.headers {
		name, value, _ := strings.Cut(h, "=")
		cfg.HTTP.Headers = append(cfg.HTTP.Headers, httpclient.Header{Name: strings.TrimSpace(name), Value: value})
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	if o.transport != "" {
		cfg.HTTP.Transport = httpclient.TransportKind(o.transport)
	}
	if o.timeout > 0 {
		cfg.HTTP.Timeout = o.timeout
	}
}

// queryParams returns --param values in order.
func (o *options) queryParams() httpclient.Params {
	var params httpclient.Params
	for _, p := range o.params {
		key, value, _ := strings.Cut(p, "=")
		params = params.Add(strings.TrimSpace(key), value)
	}
	return params
}
