package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// gameServiceImpl bridges gRPC requests to the DaemonServer
type gameServiceImpl struct {
	UnimplementedGameServiceServer
	daemon *DaemonServer
}

func newGameServiceImpl(daemon *DaemonServer) *gameServiceImpl {
	return &gameServiceImpl{daemon: daemon}
}

// Execute expects {"command": name, "args": {...}} and returns the command result
func (s *gameServiceImpl) Execute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()
	command, _ := fields["command"].(string)
	if command == "" {
		return nil, status.Error(codes.InvalidArgument, "command is required")
	}
	args, _ := fields["args"].(map[string]interface{})

	result, err := s.daemon.Execute(ctx, command, args)
	if err != nil {
		return nil, toStatusError(err)
	}

	out, err := structpb.NewStruct(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode result: %v", err)
	}
	return out, nil
}

// Watch expects {"types": [...]} and streams matching events until the client leaves or the daemon stops
func (s *gameServiceImpl) Watch(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	types, err := parseEventTypes(req.AsMap()["types"])
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	feed, sub := s.daemon.Subscribe(types...)
	defer sub.Close()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.daemon.Stopping():
			return nil
		case event := <-feed:
			fields, err := event.Fields()
			if err != nil {
				return status.Errorf(codes.Internal, "failed to encode event: %v", err)
			}
			msg, err := structpb.NewStruct(fields)
			if err != nil {
				return status.Errorf(codes.Internal, "failed to encode event: %v", err)
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

func parseEventTypes(raw interface{}) ([]events.EventType, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("types must be a list of event names")
	}
	names := make([]string, len(list))
	for i, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("types must be a list of event names")
		}
		names[i] = name
	}
	return events.ParseEventTypes(names)
}

// toStatusError maps domain failures onto gRPC codes so clients can tell rejections from faults
func toStatusError(err error) error {
	var (
		validation *shared.ValidationError
		notFound   *shared.NotFoundError
		invalid    *shared.InvalidStateError
		funds      *shared.InsufficientFundsError
	)

	switch {
	case errors.Is(err, daemon.ErrUnknownCommand):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, daemon.ErrInvalidArguments), errors.As(err, &validation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &invalid), errors.As(err, &funds):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
