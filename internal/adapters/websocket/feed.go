package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
)

const writeTimeout = 5 * time.Second

// Feed pushes game events to browser clients as JSON text frames.
// Clients pick event types with ?types=A,B and never send anything back.
type Feed struct {
	bus            *events.Bus
	buffer         int
	originPatterns []string
	logger         *slog.Logger
}

// NewFeed creates a feed over bus. originPatterns are host patterns accepted
// besides same-origin requests.
func NewFeed(bus *events.Bus, buffer int, originPatterns []string, logger *slog.Logger) *Feed {
	if buffer < 1 {
		buffer = 256
	}
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &Feed{
		bus:            bus,
		buffer:         buffer,
		originPatterns: originPatterns,
		logger:         logger,
	}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	types, err := events.ParseEventTypes(splitTypes(r.URL.Query().Get("types")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: f.originPatterns,
	})
	if err != nil {
		f.logger.Warn("failed to accept websocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.CloseNow()

	feed, sub := f.bus.SubscribeChannel(f.buffer, types...)
	defer sub.Close()

	// Reads are discarded; the returned context ends when the client goes away
	ctx := conn.CloseRead(r.Context())
	f.logger.Debug("websocket client connected", "remote", r.RemoteAddr, "types", types)

	for {
		select {
		case <-ctx.Done():
			f.logger.Debug("websocket client disconnected", "remote", r.RemoteAddr)
			return
		case event := <-feed:
			fields, err := event.Fields()
			if err != nil {
				f.logger.Error("failed to encode event", "type", event.Type, "error", err)
				continue
			}
			if err := f.write(ctx, conn, fields); err != nil {
				f.logger.Debug("websocket write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		}
	}
}

func (f *Feed) write(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, v)
}

func splitTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Server serves a Feed on host:port at path
type Server struct {
	HTTP *http.Server
}

func NewServer(feed *Feed, host string, port int, path string) *Server {
	if path == "" {
		path = "/events"
	}
	mux := http.NewServeMux()
	mux.Handle(path, feed)

	return &Server{
		HTTP: &http.Server{
			Addr:              net.JoinHostPort(host, fmt.Sprintf("%d", port)),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down within timeout
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	listener, err := net.Listen("tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.HTTP.Addr, err)
	}

	// Request contexts derive from ctx so hijacked connections end with the server
	s.HTTP.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.HTTP.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
