// Package watch connects to an editor's socket.io server and rebuilds the
// graph every time the editor emits a "build" event. Results are emitted
// back as "build:result" and optionally published to an artifact sink.
package watch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/blueprintgo/internal/artifact"
	"github.com/specialistvlad/blueprintgo/internal/build"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names exchanged with the editor.
const (
	EventBuild  = "build"
	EventResult = "build:result"
)

const defaultConnectTimeout = 15 * time.Second

// Config describes the editor connection.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Payload is the body of a build event.
type Payload struct {
	RequestID string           `json:"requestId,omitempty"`
	Graph     json.RawMessage  `json:"graph"`
	Options   compiler.Options `json:"options"`
	// Artifact names the published script; empty skips publishing.
	Artifact string `json:"artifact,omitempty"`
}

// Outcome is the body of a build:result event.
type Outcome struct {
	RequestID string            `json:"requestId,omitempty"`
	Script    string            `json:"script,omitempty"`
	Warnings  []diag.Diagnostic `json:"warnings,omitempty"`
	Location  string            `json:"location,omitempty"`
	Error     *diag.Diagnostic  `json:"error,omitempty"`
}

// Watcher serves build events.
type Watcher struct {
	cfg   Config
	build *build.Service
	sink  artifact.Sink
}

// New creates a watcher. sink may be nil.
func New(cfg Config, svc *build.Service, sink artifact.Sink) *Watcher {
	return &Watcher{cfg: cfg, build: svc, sink: sink}
}

// Run connects and serves build events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	io, err := w.connect(ctx)
	if err != nil {
		return err
	}
	defer io.Disconnect()
	logger := ctxlog.FromContext(ctx).With("sid", io.Id())

	io.On(types.EventName(EventBuild), func(data ...any) {
		out := w.Handle(ctx, data...)
		logger.Debug("Emitting build result.", "request_id", out.RequestID, "failed", out.Error != nil)
		io.Emit(EventResult, out)
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		logger.Warn("Disconnected from editor.", "reason", fmt.Sprint(reason...))
	})

	logger.Info("Watching for build events.", "event", EventBuild)
	<-ctx.Done()
	logger.Info("Watcher stopping.")
	return nil
}

func (w *Watcher) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("url", w.cfg.URL)

	parsedURL, err := url.Parse(w.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("watch URL %q must include scheme and host", w.cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if w.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(w.cfg.Namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to editor.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- connectError(errs...)
	})

	io.Connect()

	timeout := w.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Handle compiles the payload of one build event. Event arguments arrive
// decoded as generic JSON values, a JSON string or raw bytes.
func (w *Watcher) Handle(ctx context.Context, data ...any) Outcome {
	logger := ctxlog.FromContext(ctx)

	p, err := decodePayload(data)
	if err != nil {
		d := diag.FromError(err)
		return Outcome{Error: &d}
	}

	res, err := w.build.CompileJSON(ctx, p.Graph, p.Options)
	if err != nil {
		d := diag.FromError(err)
		return Outcome{RequestID: p.RequestID, Error: &d}
	}
	out := Outcome{RequestID: p.RequestID, Script: res.Script, Warnings: res.Warnings}

	if w.sink != nil && p.Artifact != "" {
		loc, err := w.sink.Put(ctx, p.Artifact, []byte(res.Script))
		if err != nil {
			logger.Error("Failed to publish script.", "artifact", p.Artifact, "error", err)
			d := diag.FromError(fmt.Errorf("publish %q: %w", p.Artifact, err))
			out.Error = &d
			return out
		}
		logger.Info("Script published.", "location", loc)
		out.Location = loc
	}
	return out
}

func decodePayload(data []any) (*Payload, error) {
	if len(data) == 0 || data[0] == nil {
		return nil, fmt.Errorf("build event carries no payload")
	}

	var raw []byte
	switch v := data[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode build payload: %w", err)
		}
		raw = b
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode build payload: %w", err)
	}
	if len(p.Graph) == 0 || string(p.Graph) == "null" {
		return nil, fmt.Errorf("build payload has no graph")
	}
	return &p, nil
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args ...any) error {
	if len(args) == 0 {
		return errors.New("watch: connection refused without a reason")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("watch: %v", args[0])
}
