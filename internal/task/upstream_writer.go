package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/metrics"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// RunUpstreamWriter is the single goroutine that assigns proxy ids and owns
// the JVM's write side. It is the only place the monotonic counter is
// touched, so ids are assigned without a lock; rewriting a command's id is
// the only content the proxy ever mutates.
//
// For every command it enqueues the matching OutstandingCmd before writing
// the frame to w. Both steps happen in this one goroutine with no
// intervening yield point that could let the Upstream Reader observe the
// reply before the outstanding entry exists, which is what makes the
// correspondence happens-before invariant hold without any extra
// synchronization between the two upstream tasks.
func RunUpstreamWriter(
	ctx context.Context,
	w io.Writer,
	incoming *queue.Queue[proxy.IncomingCmd],
	outstanding *queue.Queue[proxy.OutstandingCmd],
	tracer trace.Tracer,
	m *metrics.Metrics,
	logger *slog.Logger,
) error {
	var nextProxyID uint32

	for {
		cmd, ok := incoming.Recv(ctx)
		if !ok {
			logger.Debug("upstream writer: shutting down")
			return nil
		}

		proxyID := nextProxyID
		nextProxyID++

		clientID := cmd.Packet.ID

		_, span := tracer.Start(ctx, "jdwp.command")
		span.SetAttributes(
			attribute.Int64("jdwp.client_id", int64(clientID)),
			attribute.Int64("jdwp.proxy_id", int64(proxyID)),
		)

		outCmd := proxy.OutstandingCmd{
			ClientID: clientID,
			ProxyID:  proxyID,
			Sink:     cmd.Sink,
			Span:     span,
		}

		// Must be enqueued before the frame reaches the JVM: a reply can
		// arrive and be processed by the Upstream Reader as soon as the
		// write below returns, and that goroutine only ever looks up ids
		// already present in the correspondence table it builds from this
		// queue.
		if err := outstanding.Send(ctx, outCmd); err != nil {
			return fmt.Errorf("upstream writer: enqueue outstanding command: %w", err)
		}

		frame := cmd.Packet
		frame.ID = proxyID
		if err := jdwp.WriteFrame(w, frame, jdwp.ModeCommand); err != nil {
			return fmt.Errorf("upstream writer: %w", err)
		}

		m.ProxyIDsAssignedTotal.Inc()
		m.IncomingQueueDepth.Set(float64(incoming.Len()))
		m.OutstandingQueueDepth.Set(float64(outstanding.Len()))
	}
}
