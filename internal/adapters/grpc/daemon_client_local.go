package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// DaemonClientLocal implements daemon.DaemonClient in-process, without a socket.
// It returns the same sentinel errors as DaemonClientGRPC.
type DaemonClientLocal struct {
	server *DaemonServer
}

func NewDaemonClientLocal(server *DaemonServer) *DaemonClientLocal {
	return &DaemonClientLocal{server: server}
}

func (c *DaemonClientLocal) Execute(ctx context.Context, command string, args map[string]interface{}) (map[string]interface{}, error) {
	result, err := c.server.Execute(ctx, command, args)
	if err != nil {
		return nil, localError(err)
	}
	return result, nil
}

func (c *DaemonClientLocal) Watch(ctx context.Context, types []string, handle func(daemon.Event) error) error {
	list := make([]interface{}, len(types))
	for i, t := range types {
		list[i] = t
	}
	parsed, err := parseEventTypes(list)
	if err != nil {
		return fmt.Errorf("%w: %v", daemon.ErrInvalidArguments, err)
	}

	feed, sub := c.server.Subscribe(parsed...)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.server.Stopping():
			return nil
		case event := <-feed:
			if err := deliver(event, handle); err != nil {
				return err
			}
		}
	}
}

func (c *DaemonClientLocal) Close() error {
	return nil
}

func deliver(event events.Event, handle func(daemon.Event) error) error {
	fields, err := event.Fields()
	if err != nil {
		return err
	}
	return handle(daemon.Event(fields))
}

func localError(err error) error {
	var (
		notFound *shared.NotFoundError
		invalid  *shared.InvalidStateError
		funds    *shared.InsufficientFundsError
		valid    *shared.ValidationError
	)
	switch {
	case errors.Is(err, daemon.ErrUnknownCommand), errors.Is(err, daemon.ErrInvalidArguments):
		return err
	case errors.As(err, &valid):
		return fmt.Errorf("%w: %v", daemon.ErrInvalidArguments, err)
	case errors.As(err, &notFound), errors.As(err, &invalid), errors.As(err, &funds):
		return fmt.Errorf("%w: %v", daemon.ErrRejected, err)
	}
	return err
}
