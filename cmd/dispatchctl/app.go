package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/dispatch/component"
	"github.com/kbukum/dispatch/config"
	apperrors "github.com/kbukum/dispatch/errors"
	"github.com/kbukum/dispatch/httpclient"
	"github.com/kbukum/dispatch/logger"
	"github.com/kbukum/dispatch/observability"
	"github.com/kbukum/dispatch/version"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// envPrefix scopes environment overrides, e.g. DISPATCH_HTTP_BASE_URL.
const envPrefix = "DISPATCH"

// run executes one dispatchctl invocation and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		if _, ok := apperrors.AsAppError(err); !ok {
			err = apperrors.InvalidInput("", err.Error())
		}
		reportError(stderr, OutputJSON, err)
		return exitUsage
	}
	if opts.showVersion {
		_, _ = fmt.Fprintln(stdout, version.UserAgent(serviceName))
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		reportError(stderr, OutputJSON, err)
		return exitUsage
	}
	cfg.InitLogging(serviceName, "httpclient", "component")
	log := logger.Get(serviceName)

	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, version.GetShortVersion(), cfg.Environment)
	if err != nil {
		reportError(stderr, cfg.Output, apperrors.Configuration(err))
		return exitUsage
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	registry := component.NewRegistry()
	client := httpclient.NewComponent(cfg.HTTP)
	if err := registry.Register(client); err != nil {
		reportError(stderr, cfg.Output, apperrors.Internal(err))
		return exitUsage
	}
	if err := registry.StartAll(ctx); err != nil {
		reportError(stderr, cfg.Output, apperrors.Configuration(err))
		return exitUsage
	}
	defer func() { _ = registry.StopAll(context.WithoutCancel(ctx)) }()

	for _, d := range registry.Describe() {
		log.Debug("component ready", logger.Fields("name", d.Name, "type", d.Type, "details", d.Details))
	}

	res, err := execute(ctx, client.Dispatcher(), opts)
	if err != nil {
		reportError(stderr, cfg.Output, err)
		return exitUsage
	}
	if err := encode(stdout, cfg.Output, res); err != nil {
		log.WithError(err).Error("write output failed")
		return exitFailed
	}
	if !res.Success {
		return exitFailed
	}
	return exitOK
}

// loadConfig reads the config files and applies flag overrides.
func loadConfig(opts *options) (*Config, error) {
	loaderOpts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}

	cfg := &Config{}
	if err := config.LoadConfig(serviceName, cfg, loaderOpts...); err != nil {
		return nil, apperrors.Configuration(err)
	}
	opts.apply(cfg)
	if !hasHeader(cfg.HTTP.Headers, "User-Agent") {
		ua := httpclient.Header{Name: "User-Agent", Value: version.UserAgent(serviceName)}
		cfg.HTTP.Headers = append([]httpclient.Header{ua}, cfg.HTTP.Headers...)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func hasHeader(headers []httpclient.Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// execute runs the selected command. The error is non-nil only for
// usage problems detected before anything is sent.
func execute(ctx context.Context, d *httpclient.Dispatcher, opts *options) (result, error) {
	path := opts.args[0]
	params := opts.queryParams()

	switch opts.command {
	case "get":
		env := httpclient.Get[any](ctx, d, path, params)
		return toResult(env, env.Data, opts.includeHeaders), nil
	case "text":
		env := httpclient.GetText(ctx, d, path, params)
		return toResult(env, env.Data, opts.includeHeaders), nil
	case "delete":
		env := httpclient.Delete[any](ctx, d, path)
		return toResult(env, env.Data, opts.includeHeaders), nil
	case "download":
		env := httpclient.Download(ctx, d, path, opts.args[1])
		return toResult(env, opts.args[1], opts.includeHeaders), nil
	case "form":
		env := httpclient.PostForm[any](ctx, d, path, params)
		return toResult(env, env.Data, opts.includeHeaders), nil
	}

	body, err := parseBody(opts.data)
	if err != nil {
		return result{}, err
	}
	var env *httpclient.Envelope[any]
	switch opts.command {
	case "post":
		env = httpclient.Post[any](ctx, d, path, body)
	case "put":
		env = httpclient.Put[any](ctx, d, path, body)
	default:
		env = httpclient.Patch[any](ctx, d, path, body)
	}
	return toResult(env, env.Data, opts.includeHeaders), nil
}

// parseBody decodes --data. An empty body is sent as JSON null.
func parseBody(data string) (any, error) {
	if data == "" {
		return nil, nil
	}
	var body any
	if err := httpclient.NewJSONCodec().Unmarshal([]byte(data), &body); err != nil {
		return nil, apperrors.InvalidFormat("data", "JSON").WithCause(err)
	}
	return body, nil
}

// reportError writes err to w as an error response.
func reportError(w io.Writer, format string, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if encErr := encode(w, format, appErr.ToResponse()); encErr != nil {
		_, _ = fmt.Fprintf(w, "%s: %v\n", serviceName, err)
	}
}
