package task

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jvmdbg/jdwp-proxy/internal/config"
	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/domain/session"
	"github.com/jvmdbg/jdwp-proxy/internal/launcher"
	"github.com/jvmdbg/jdwp-proxy/internal/metrics"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// frontendPortEnv is the environment variable a launched front-end process
// reads to learn the proxy's client-facing port, mirroring how a real
// JDWP-aware IDE is pointed at a debuggee.
const frontendPortEnv = "JVMDBG_PROXY_PORT"

// Supervisor accepts client connections, dials the JVM once, and wires the
// four per-role task kinds together through the shared queues.
type Supervisor struct {
	Config   *config.ProxyConfig
	Metrics  *metrics.Metrics
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Registry *session.Registry
}

// Run dials the JVM, binds the client listener, optionally launches a
// front-end process, and accepts clients until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	upstreamConn, err := s.dialUpstream(ctx)
	if err != nil {
		return fmt.Errorf("supervisor: %w", err)
	}

	listener, err := net.Listen("tcp", s.Config.Listen.Addr)
	if err != nil {
		upstreamConn.Close()
		return fmt.Errorf("supervisor: listen on %s: %w", s.Config.Listen.Addr, err)
	}
	s.Logger.Info("listening for clients", "addr", listener.Addr().String())

	incoming := queue.New[proxy.IncomingCmd](s.Config.Listen.IncomingQueueCapacity)
	outstanding := queue.New[proxy.OutstandingCmd](s.Config.Upstream.OutstandingQueueCapacity)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	upstreamErrs := make(chan error, 2)
	go func() {
		upstreamErrs <- RunUpstreamWriter(runCtx, upstreamConn, incoming, outstanding, s.Tracer, s.Metrics, s.Logger.With("task", "upstream_writer"))
	}()
	go func() {
		upstreamErrs <- RunUpstreamReader(runCtx, upstreamConn, outstanding, s.Registry, s.Metrics, s.Logger.With("task", "upstream_reader"))
	}()

	// fatalUpstream carries the first non-nil upstream-task error. A failed
	// upstream task cancels runCtx so acceptLoop's blocking Accept unblocks
	// instead of going on accepting clients against a dead upstream forever.
	fatalUpstream := make(chan error, 1)
	go func() {
		for i := 0; i < 2; i++ {
			if err := <-upstreamErrs; err != nil {
				select {
				case fatalUpstream <- err:
				default:
				}
				cancel()
			}
		}
	}()

	if s.Config.Frontend.Command != "" {
		port := portFromAddr(listener.Addr().String())
		if _, err := launcher.Launch(ctx, s.Config.Frontend.Command, s.Config.Frontend.Args, []string{frontendPortEnv + "=" + port}); err != nil {
			s.Logger.Error("failed to launch frontend", "error", err)
		}
	}

	go func() {
		<-runCtx.Done()
		listener.Close()
		upstreamConn.Close()
	}()

	acceptErr := s.acceptLoop(runCtx, listener, incoming)

	select {
	case err := <-fatalUpstream:
		return fmt.Errorf("supervisor: %w", err)
	default:
	}
	return acceptErr
}

func (s *Supervisor) dialUpstream(ctx context.Context) (net.Conn, error) {
	timeout, err := time.ParseDuration(s.Config.Upstream.DialTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := (&net.Dialer{}).DialContext(dialCtx, "tcp", s.Config.Upstream.Addr)
	if err != nil {
		return nil, fmt.Errorf("dial upstream %s: %w", s.Config.Upstream.Addr, err)
	}

	if err := jdwp.WriteHandshake(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upstream handshake: %w", err)
	}
	if err := jdwp.ReadHandshake(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upstream handshake: %w", err)
	}

	s.Logger.Info("connected to upstream JVM", "addr", s.Config.Upstream.Addr)
	return conn, nil
}

func (s *Supervisor) acceptLoop(ctx context.Context, listener net.Listener, incoming *queue.Queue[proxy.IncomingCmd]) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			s.Logger.Error("accept error", "error", err)
			continue
		}
		go s.handleClient(ctx, conn, incoming)
	}
}

func (s *Supervisor) handleClient(ctx context.Context, conn net.Conn, incoming *queue.Queue[proxy.IncomingCmd]) {
	defer conn.Close()

	if err := jdwp.ReadHandshake(conn); err != nil {
		s.Metrics.HandshakeFailuresTotal.Inc()
		s.Logger.Warn("client handshake mismatch", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	if err := jdwp.WriteHandshake(conn); err != nil {
		s.Logger.Warn("client handshake write failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	sess, sessCtx := session.New(ctx)
	s.Registry.Register(sess)
	s.Metrics.ClientsConnected.Set(float64(s.Registry.Len()))

	var closeOnce sync.Once
	teardown := func() {
		closeOnce.Do(func() {
			sess.Close()
			conn.Close()
			s.Registry.Unregister(sess)
			s.Metrics.ClientsConnected.Set(float64(s.Registry.Len()))
		})
	}
	defer teardown()

	logger := s.Logger.With("session", sess.ID.String(), "remote", conn.RemoteAddr().String())
	logger.Info("client connected")

	errs := make(chan error, 2)
	go func() { errs <- RunClientReader(sessCtx, conn, incoming, sess.Sink(), logger) }()
	go func() { errs <- RunClientWriter(sessCtx, conn, sess.Replies(), logger) }()

	if err := <-errs; err != nil {
		logger.Debug("client task exited", "error", err)
	}
	teardown()
	<-errs
	logger.Info("client disconnected")
}

func portFromAddr(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
