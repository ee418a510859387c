// Package task implements the proxy's five concurrent roles: per-client
// Reader and Writer, the singleton Upstream Writer and Upstream Reader, and
// the Supervisor that accepts connections and wires the rest together.
// Every task communicates exclusively through internal/queue channels and
// context cancellation; no task ever locks another task's state.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// RunClientReader reads frames from one client connection and enqueues each
// as an IncomingCmd stamped with sink, until ctx is cancelled or r returns
// an error. The proxy never reads a command's contents; it forwards the
// frame verbatim.
func RunClientReader(ctx context.Context, r io.Reader, incoming *queue.Queue[proxy.IncomingCmd], sink proxy.ReplySink, logger *slog.Logger) error {
	for {
		pkt, err := jdwp.ReadFrame(r, jdwp.ModeCommand)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("client reader: connection closed")
				return nil
			}
			return fmt.Errorf("client reader: %w", err)
		}

		cmd := proxy.IncomingCmd{Packet: pkt, Sink: sink}
		if err := incoming.Send(ctx, cmd); err != nil {
			return fmt.Errorf("client reader: enqueue incoming command: %w", err)
		}
	}
}
