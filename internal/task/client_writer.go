package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// RunClientWriter drains replies (and event-packet broadcasts, which arrive
// on the same queue) destined for one client and writes each to w, until
// ctx is cancelled or the write fails. Per-client ordering is preserved
// because this is the queue's only consumer.
func RunClientWriter(ctx context.Context, w io.Writer, replies *queue.Queue[proxy.Reply], logger *slog.Logger) error {
	for {
		reply, ok := replies.Recv(ctx)
		if !ok {
			logger.Debug("client writer: session closed")
			return nil
		}

		if err := jdwp.WriteFrame(w, reply.Packet, jdwp.ModeReply); err != nil {
			return fmt.Errorf("client writer: %w", err)
		}
	}
}
