package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// GetWantedListQuery returns the wanted persons still at large this round
type GetWantedListQuery struct{}

type GetWantedListResponse struct {
	Round       int
	Entries     []events.WantedEntry
	ClassCounts map[string]int
}

type GetWantedListHandler struct {
	engine *game.Engine
}

func NewGetWantedListHandler(engine *game.Engine) *GetWantedListHandler {
	return &GetWantedListHandler{engine: engine}
}

func (h *GetWantedListHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetWantedListQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWantedListQuery")
	}

	snap := h.engine.Snapshot()
	counts := make(map[string]int, len(snap.Wanted))
	for _, w := range snap.Wanted {
		counts[w.Class]++
	}
	return &GetWantedListResponse{
		Round:       snap.Round,
		Entries:     snap.Wanted,
		ClassCounts: counts,
	}, nil
}
