package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// ListDronesQuery lists the fleet and the price of the next purchase
type ListDronesQuery struct {
	PendingOnly bool // only drones awaiting a response
}

type ListDronesResponse struct {
	Drones       []game.DroneView
	NextCost     float64
	NextAccuracy float64
	Balance      float64
	CanAfford    bool
}

type ListDronesHandler struct {
	engine *game.Engine
}

func NewListDronesHandler(engine *game.Engine) *ListDronesHandler {
	return &ListDronesHandler{engine: engine}
}

func (h *ListDronesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListDronesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListDronesQuery")
	}

	snap := h.engine.Snapshot()
	drones := make([]game.DroneView, 0, len(snap.Drones))
	for _, d := range snap.Drones {
		if query.PendingOnly && d.PendingReportedAs == "" {
			continue
		}
		drones = append(drones, d)
	}

	return &ListDronesResponse{
		Drones:       drones,
		NextCost:     snap.NextDroneCost,
		NextAccuracy: snap.NextDroneAccuracy,
		Balance:      snap.Balance,
		CanAfford:    snap.Balance >= snap.NextDroneCost,
	}, nil
}
