package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// PurchaseDroneCommand buys the next drone at the current escalating price
type PurchaseDroneCommand struct{}

type PurchaseDroneResponse struct {
	Drone    game.DroneView
	Cost     float64
	Balance  float64
	NextCost float64
}

type PurchaseDroneHandler struct {
	engine *game.Engine
}

func NewPurchaseDroneHandler(engine *game.Engine) *PurchaseDroneHandler {
	return &PurchaseDroneHandler{engine: engine}
}

func (h *PurchaseDroneHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*PurchaseDroneCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *PurchaseDroneCommand")
	}

	view, cost, err := h.engine.PurchaseDrone()
	if err != nil {
		return nil, err
	}

	snap := h.engine.Snapshot()
	return &PurchaseDroneResponse{
		Drone:    view,
		Cost:     cost,
		Balance:  snap.Balance,
		NextCost: snap.NextDroneCost,
	}, nil
}
