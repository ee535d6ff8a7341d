// Package tracing wraps AWS X-Ray segments. A nil or disabled Tracer runs
// the wrapped function without recording anything.
package tracing

import (
	"context"
	"log/slog"
	"os"

	"facility-booking/internal/pkg/config"

	"github.com/aws/aws-xray-sdk-go/xray"
)

type Tracer struct {
	enabled bool
	service string
}

func NewTracer(cfg config.TracingConfig) (*Tracer, error) {
	if !cfg.Enabled {
		return &Tracer{}, nil
	}

	if err := xray.Configure(xray.Config{
		DaemonAddr:     cfg.DaemonAddr,
		ServiceVersion: "1.0.0",
	}); err != nil {
		slog.Warn("failed to configure X-Ray, falling back to defaults", "error", err)
		if configErr := xray.Configure(xray.Config{}); configErr != nil {
			return nil, configErr
		}
	}
	_ = os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")

	return &Tracer{enabled: true, service: cfg.ServiceName}, nil
}

func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// Segment starts a root segment, used by background jobs and HTTP requests.
func (t *Tracer) Segment(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if !t.Enabled() {
		return fn(ctx)
	}

	ctx, seg := xray.BeginSegment(ctx, t.service+"."+name)
	err := fn(ctx)
	seg.Close(err)
	return err
}

// Subsegment nests under the segment carried by ctx.
func (t *Tracer) Subsegment(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if !t.Enabled() {
		return fn(ctx)
	}

	ctx, seg := xray.BeginSubsegment(ctx, name)
	err := fn(ctx)
	seg.Close(err)
	return err
}

// Annotate attaches an indexed key to the innermost segment in ctx.
func Annotate(ctx context.Context, key string, value any) {
	seg := xray.GetSegment(ctx)
	if seg == nil {
		return
	}
	if err := seg.AddAnnotation(key, value); err != nil {
		slog.Debug("failed to add trace annotation", "key", key, "error", err)
	}
}
