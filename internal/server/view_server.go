package server

import (
	"context"
	"fmt"
	"net/http"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/httpx/reply"
)

type viewService interface {
	PublicEvent(ctx context.Context, slug value.Slug) (entity.EventView, error)
	EventDetail(ctx context.Context, caller value.UserID, id value.EventID) (entity.EventView, error)
	Dashboard(ctx context.Context, caller value.UserID) (entity.DashboardView, error)
}

type ViewServer struct {
	viewService viewService
}

func NewViewServer(viewService viewService) ViewServer {
	return ViewServer{
		viewService: viewService,
	}
}

func (s ViewServer) getV1PublicEvent(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	view, err := s.viewService.PublicEvent(ctx, value.Slug(r.PathValue("slug")))
	if err != nil {
		return fmt.Errorf("viewService.PublicEvent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, view)

	return nil
}

func (s ViewServer) getV1Event(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	view, err := s.viewService.EventDetail(ctx, callerFromContext(ctx), eventID)
	if err != nil {
		return fmt.Errorf("viewService.EventDetail: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, view)

	return nil
}

func (s ViewServer) getV1Dashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	view, err := s.viewService.Dashboard(ctx, callerFromContext(ctx))
	if err != nil {
		return fmt.Errorf("viewService.Dashboard: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, view)

	return nil
}
