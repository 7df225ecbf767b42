package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// ListCrowdQuery lists the persons present in the world, optionally for one class
type ListCrowdQuery struct {
	Class string
}

type ListCrowdResponse struct {
	Sightings []game.SightingView
}

type ListCrowdHandler struct {
	engine *game.Engine
}

func NewListCrowdHandler(engine *game.Engine) *ListCrowdHandler {
	return &ListCrowdHandler{engine: engine}
}

func (h *ListCrowdHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListCrowdQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCrowdQuery")
	}

	snap := h.engine.Snapshot()
	if query.Class == "" {
		return &ListCrowdResponse{Sightings: snap.Crowd}, nil
	}

	filtered := make([]game.SightingView, 0)
	for _, s := range snap.Crowd {
		if strings.EqualFold(s.Class, query.Class) {
			filtered = append(filtered, s)
		}
	}
	return &ListCrowdResponse{Sightings: filtered}, nil
}
