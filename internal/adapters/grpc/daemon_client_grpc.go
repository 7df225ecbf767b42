package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// DaemonClientGRPC implements daemon.DaemonClient over the daemon's unix socket
type DaemonClientGRPC struct {
	conn   *grpc.ClientConn
	client GameServiceClient
}

// NewDaemonClientGRPC connects to the daemon at socketPath (e.g. "/tmp/dronewatch-daemon.sock")
func NewDaemonClientGRPC(socketPath string) (*DaemonClientGRPC, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return NewDaemonClientFromConn(conn), nil
}

// NewDaemonClientFromConn wraps an existing connection; the client takes ownership of it
func NewDaemonClientFromConn(conn *grpc.ClientConn) *DaemonClientGRPC {
	return &DaemonClientGRPC{
		conn:   conn,
		client: NewGameServiceClient(conn),
	}
}

// Close closes the gRPC connection
func (c *DaemonClientGRPC) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Execute runs a named command on the daemon
func (c *DaemonClientGRPC) Execute(ctx context.Context, command string, args map[string]interface{}) (map[string]interface{}, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	req, err := structpb.NewStruct(map[string]interface{}{
		"command": command,
		"args":    args,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", daemon.ErrInvalidArguments, err)
	}

	resp, err := c.client.Execute(ctx, req)
	if err != nil {
		return nil, fromStatusError(command, err)
	}
	return resp.AsMap(), nil
}

// Watch streams events until ctx ends, the daemon stops, or handle returns an error
func (c *DaemonClientGRPC) Watch(ctx context.Context, types []string, handle func(daemon.Event) error) error {
	list := make([]interface{}, len(types))
	for i, t := range types {
		list[i] = t
	}
	req, err := structpb.NewStruct(map[string]interface{}{"types": list})
	if err != nil {
		return fmt.Errorf("%w: %v", daemon.ErrInvalidArguments, err)
	}

	stream, err := c.client.Watch(ctx, req)
	if err != nil {
		return fromStatusError("watch", err)
	}

	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fromStatusError("watch", err)
		}
		if err := handle(daemon.Event(msg.AsMap())); err != nil {
			return err
		}
	}
}

// fromStatusError restores the daemon sentinel errors from a gRPC status
func fromStatusError(command string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", command, err)
	}

	switch st.Code() {
	case codes.Unimplemented:
		return fmt.Errorf("%w: %s", daemon.ErrUnknownCommand, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", daemon.ErrInvalidArguments, st.Message())
	case codes.FailedPrecondition, codes.NotFound:
		return fmt.Errorf("%w: %s", daemon.ErrRejected, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("daemon unavailable: %s", st.Message())
	}
	return fmt.Errorf("%s failed: %s", command, st.Message())
}
