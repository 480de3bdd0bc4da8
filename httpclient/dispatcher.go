package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dispatch/logger"
	"github.com/kbukum/dispatch/observability"
)

const instrumentationName = "github.com/kbukum/dispatch/httpclient"

// Dispatcher issues HTTP operations against a base address and normalizes
// every outcome into an Envelope.
//
// The base address and default headers may be changed at any time. Each
// operation takes a snapshot of both when it starts, so a concurrent change
// applies to later calls only.
type Dispatcher struct {
	mu      sync.RWMutex
	baseURL string
	headers []Header

	config  Config
	doer    Doer
	codec   Codec
	fs      afero.Fs
	log     *logger.Logger
	tracer  trace.Tracer
	meter   metric.MeterProvider
	metrics *observability.DispatchMetrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDoer replaces the transport built from Config.
func WithDoer(d Doer) Option {
	return func(dp *Dispatcher) { dp.doer = d }
}

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) Option {
	return func(dp *Dispatcher) { dp.codec = c }
}

// WithFileSystem replaces the filesystem used by Download.
func WithFileSystem(fs afero.Fs) Option {
	return func(dp *Dispatcher) { dp.fs = fs }
}

// WithLogger replaces the logger.
func WithLogger(l *logger.Logger) Option {
	return func(dp *Dispatcher) { dp.log = l.WithComponent("httpclient") }
}

// WithTracerProvider sets the tracer provider used for call spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(dp *Dispatcher) { dp.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider sets the meter provider used for call metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(dp *Dispatcher) { dp.meter = mp }
}

// New creates a Dispatcher from cfg.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		baseURL: cfg.BaseURL,
		config:  cfg,
		codec:   NewJSONCodec(),
		fs:      afero.NewOsFs(),
		log:     logger.Get("httpclient"),
		tracer:  otel.GetTracerProvider().Tracer(instrumentationName),
		meter:   otel.GetMeterProvider(),
	}
	d.headers = append(d.headers, cfg.Headers...)
	if cfg.BearerToken != "" {
		d.AddBearerToken(cfg.BearerToken)
	}
	if cfg.JSONContentType {
		d.AddJSONContentTypeHeader()
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.doer == nil {
		doer, err := newDoer(&cfg, d.fs)
		if err != nil {
			return nil, err
		}
		d.doer = doer
	}

	metrics, err := observability.NewDispatchMetrics(d.meter.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	d.metrics = metrics

	return d, nil
}

// SetBaseAddress replaces the base address. It is not validated here;
// a malformed address fails the next operation.
func (d *Dispatcher) SetBaseAddress(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseURL = uri
}

// BaseAddress returns the current base address.
func (d *Dispatcher) BaseAddress() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.baseURL
}

// ClearHeaders removes all default headers.
func (d *Dispatcher) ClearHeaders() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.headers = nil
}

// AddHeader appends a default header. Repeated names are sent as repeated
// header values.
func (d *Dispatcher) AddHeader(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.headers = append(d.headers, Header{Name: name, Value: value})
}

// AddJSONContentTypeHeader adds Content-Type: application/json to the
// default headers.
func (d *Dispatcher) AddJSONContentTypeHeader() {
	d.AddHeader("Content-Type", contentTypeJSON)
}

// Headers returns a copy of the default headers in insertion order.
func (d *Dispatcher) Headers() []Header {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Header, len(d.headers))
	copy(out, d.headers)
	return out
}

// Config returns the configuration the Dispatcher was built with.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Close releases idle transport connections.
func (d *Dispatcher) Close(_ context.Context) error {
	if c, ok := d.doer.(idleCloser); ok {
		c.CloseIdleConnections()
	}
	return nil
}

// call describes one logical operation.
type call struct {
	op     string
	method string
	target string
	// url is the resolved request URL, set by send.
	url         string
	query       bool
	params      Params
	payload     func() ([]byte, error)
	contentType string
	// failStatus replaces StatusNotSent on local failures when set.
	failStatus int
	requestID  string
}

// logURL returns the resolved URL, or the raw target when send never
// resolved it.
func (c *call) logURL() string {
	if c.url != "" {
		return c.url
	}
	return c.target
}

// snapshot returns the base address and headers for a single call.
func (d *Dispatcher) snapshot() (string, []Header) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	headers := make([]Header, len(d.headers))
	copy(headers, d.headers)
	return d.baseURL, headers
}

// send builds the request for c and passes it to the transport.
func (d *Dispatcher) send(ctx context.Context, c *call) (*http.Response, *Error) {
	base, headers := d.snapshot()

	target := resolveURL(base, c.target)
	if c.query {
		target = EncodeQuery(target, c.params, d.config.QueryStyle)
	}
	c.url = target
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("http.url", target))

	var body io.Reader
	if c.payload != nil {
		data, err := c.payload()
		if err != nil {
			var lerr *Error
			if errors.As(err, &lerr) {
				return nil, lerr
			}
			return nil, newError(c.op, ErrCodeEncode, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target, body)
	if err != nil {
		return nil, newError(c.op, ErrCodeRequest, err)
	}

	for _, h := range headers {
		req.Header.Add(h.Name, h.Value)
	}
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	if d.config.RequestIDHeader != "" {
		c.requestID = uuid.NewString()
		req.Header.Set(d.config.RequestIDHeader, c.requestID)
		trace.SpanFromContext(ctx).SetAttributes(attribute.String(observability.AttrRequestID, c.requestID))
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := d.doer.Do(req)
	if err != nil {
		return nil, transportError(ctx, c.op, err)
	}
	return resp, nil
}

// resolveURL joins relative targets to base. Absolute http(s) targets are
// used verbatim.
func resolveURL(base, target string) string {
	if base == "" || strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(target, "/")
}

// decodeFunc turns a successful response body into a payload. Returning an
// *Error keeps its code; any other error is reported as ErrCodeDecode.
type decodeFunc[T any] func(body io.Reader) (T, error)

// dispatch runs c and folds the outcome into an Envelope. A nil decode
// leaves the body unread on success.
func dispatch[T any](ctx context.Context, d *Dispatcher, c *call, decode decodeFunc[T]) *Envelope[T] {
	start := time.Now()
	env := &Envelope[T]{StatusCode: StatusNotSent}

	ctx, span := d.tracer.Start(ctx, observability.SpanHTTPRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrOperationName, c.op),
			attribute.String("http.method", c.method),
		),
	)
	defer func() {
		env.Duration = time.Since(start)
		d.observe(ctx, span, c, env)
	}()

	resp, lerr := d.send(ctx, c)
	if lerr != nil {
		failLocal(env, c, lerr)
		return env
	}
	defer func() { _ = resp.Body.Close() }()

	env.StatusCode = resp.StatusCode
	env.Headers = flattenHeaders(resp.Header)

	if !isSuccessStatus(resp.StatusCode) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			failLocal(env, c, transportError(ctx, c.op, err))
			return env
		}
		env.Message = string(body)
		return env
	}

	if decode != nil {
		data, err := decode(resp.Body)
		if err != nil {
			var lerr *Error
			if !errors.As(err, &lerr) {
				lerr = newError(c.op, ErrCodeDecode, err)
			}
			failLocal(env, c, lerr)
			return env
		}
		env.Data = data
	}

	env.IsSuccess = true
	return env
}

// failLocal records a local failure on env.
func failLocal[T any](env *Envelope[T], c *call, err *Error) {
	if c.failStatus != 0 {
		env.StatusCode = c.failStatus
	}
	env.IsSuccess = false
	env.Message = err.Op + " Error: " + err.Message
	env.Err = err
}

// observe ends the call span, records metrics and logs the outcome.
func (d *Dispatcher) observe(ctx context.Context, span trace.Span, c *call, env envelopeView) {
	outcome := observability.OutcomeSuccess
	switch {
	case env.localErr() != nil:
		outcome = observability.OutcomeLocalError
	case !env.succeeded():
		outcome = observability.OutcomeRemoteError
	}

	if env.status() != StatusNotSent {
		span.SetAttributes(attribute.Int("http.status_code", env.status()))
	}
	span.SetAttributes(attribute.String(observability.AttrStatus, outcome))
	if err := env.localErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	d.metrics.Record(ctx, c.op, c.method, outcome, env.elapsed())

	fields := logger.Fields(
		logger.FieldOperation, c.op,
		logger.FieldMethod, c.method,
		logger.FieldURL, c.logURL(),
		logger.FieldStatus, env.status(),
		logger.FieldOutcome, outcome,
		logger.FieldDuration, env.elapsed().Milliseconds(),
	)
	if c.requestID != "" {
		fields[logger.FieldRequestID] = c.requestID
	}
	log := d.log.WithContext(ctx)
	switch outcome {
	case observability.OutcomeLocalError:
		log.WithError(env.localErr()).Error("request failed", fields)
	case observability.OutcomeRemoteError:
		log.Warn("request rejected", fields)
	default:
		log.Debug("request completed", fields)
	}
}

// envelopeView is the payload-independent part of an Envelope.
type envelopeView interface {
	succeeded() bool
	status() int
	localErr() error
	elapsed() time.Duration
}

func (e *Envelope[T]) succeeded() bool        { return e.IsSuccess }
func (e *Envelope[T]) status() int            { return e.StatusCode }
func (e *Envelope[T]) localErr() error        { return e.Err }
func (e *Envelope[T]) elapsed() time.Duration { return e.Duration }
