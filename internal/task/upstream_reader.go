package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/domain/session"
	"github.com/jvmdbg/jdwp-proxy/internal/metrics"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// RunUpstreamReader is the single goroutine that owns the correspondence
// table. It drains the outstanding queue opportunistically before every
// reply lookup, since a reply can physically arrive before this goroutine's
// receive on the outstanding queue has been scheduled, and the table must
// reflect every outstanding command sent before the matching frame was
// read.
func RunUpstreamReader(
	ctx context.Context,
	r io.Reader,
	outstanding *queue.Queue[proxy.OutstandingCmd],
	registry *session.Registry,
	m *metrics.Metrics,
	logger *slog.Logger,
) error {
	table := proxy.NewCorrespondenceTable()

	for {
		pkt, err := jdwp.ReadFrame(r, jdwp.ModeReply)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Warn("upstream reader: JVM connection closed")
				return nil
			}
			return fmt.Errorf("upstream reader: %w", err)
		}

		for {
			outCmd, ok := outstanding.TryRecv()
			if !ok {
				break
			}
			if err := table.Insert(outCmd); err != nil {
				return fmt.Errorf("upstream reader: %w", err)
			}
		}
		m.CorrespondenceTableSize.Set(float64(table.Len()))

		if pkt.Flags() == jdwp.FlagCommand {
			m.EventPacketsTotal.Inc()
			broadcast(pkt, registry, m, logger)
			continue
		}

		entry, ok := table.Remove(pkt.ID)
		if !ok {
			return fmt.Errorf("upstream reader: proxy id %d: %w", pkt.ID, proxy.ErrUnknownReplyID)
		}
		m.CorrespondenceTableSize.Set(float64(table.Len()))
		if entry.Span != nil {
			entry.Span.End()
		}

		reply := proxy.Reply{Packet: jdwp.Packet{Length: pkt.Length, ID: entry.ClientID, Payload: pkt.Payload}}
		if !entry.Sink.Deliver(reply) {
			m.RepliesDroppedTotal.Inc()
			logger.Debug("upstream reader: dropped reply, client gone", "client_id", entry.ClientID)
		}
	}
}

// broadcast delivers an event packet to every attached session. The id
// field is meaningless for events (there is no originating client-id to
// restore), so the frame is forwarded to each client exactly as read.
func broadcast(pkt jdwp.Packet, registry *session.Registry, m *metrics.Metrics, logger *slog.Logger) {
	for _, sink := range registry.Snapshot() {
		if !sink.Deliver(proxy.Reply{Packet: pkt}) {
			m.RepliesDroppedTotal.Inc()
			logger.Debug("upstream reader: dropped event packet, client gone")
		}
	}
}
