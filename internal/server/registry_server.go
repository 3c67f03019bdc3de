package server

import (
	"context"
	"fmt"
	"net/http"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/httpx/reply"
	"wishly/pkg/httpx/req"
	"wishly/pkg/rest"
)

type registryService interface {
	CreateEvent(ctx context.Context, caller value.UserID, in entity.EventInput) (entity.Event, error)
	UpdateEvent(ctx context.Context, caller value.UserID, id value.EventID, patch entity.EventPatch) (entity.Event, error)
	DeleteEvent(ctx context.Context, caller value.UserID, id value.EventID) error
	ToggleEventActive(ctx context.Context, caller value.UserID, id value.EventID) (entity.Event, error)
	AddGift(ctx context.Context, caller value.UserID, eventID value.EventID, in entity.GiftInput) (entity.Gift, error)
	UpdateGift(ctx context.Context, caller value.UserID, id value.GiftID, patch entity.GiftPatch) (entity.Gift, error)
	DeleteGift(ctx context.Context, caller value.UserID, id value.GiftID) error
}

type RegistryServer struct {
	registryService registryService
}

func NewRegistryServer(registryService registryService) RegistryServer {
	return RegistryServer{
		registryService: registryService,
	}
}

func (s RegistryServer) postV1Event(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateEventRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in, err := newEventInput(request)
	if err != nil {
		return fmt.Errorf("newEventInput: %w", err)
	}

	event, err := s.registryService.CreateEvent(ctx, callerFromContext(ctx), in)
	if err != nil {
		return fmt.Errorf("registryService.CreateEvent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, event)

	return nil
}

func (s RegistryServer) patchV1Event(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	var request rest.UpdateEventRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	patch, err := newEventPatch(request)
	if err != nil {
		return fmt.Errorf("newEventPatch: %w", err)
	}

	event, err := s.registryService.UpdateEvent(ctx, callerFromContext(ctx), eventID, patch)
	if err != nil {
		return fmt.Errorf("registryService.UpdateEvent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, event)

	return nil
}

func (s RegistryServer) deleteV1Event(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	if err = s.registryService.DeleteEvent(ctx, callerFromContext(ctx), eventID); err != nil {
		return fmt.Errorf("registryService.DeleteEvent: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

func (s RegistryServer) postV1EventToggleActive(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	event, err := s.registryService.ToggleEventActive(ctx, callerFromContext(ctx), eventID)
	if err != nil {
		return fmt.Errorf("registryService.ToggleEventActive: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, event)

	return nil
}

func (s RegistryServer) postV1EventGift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	var request rest.GiftRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in, err := newGiftInput(request)
	if err != nil {
		return fmt.Errorf("newGiftInput: %w", err)
	}

	gift, err := s.registryService.AddGift(ctx, callerFromContext(ctx), eventID, in)
	if err != nil {
		return fmt.Errorf("registryService.AddGift: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, gift)

	return nil
}

func (s RegistryServer) patchV1Gift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	giftID, err := value.ParseGiftID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseGiftID: %w", err)
	}

	var request rest.UpdateGiftRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	patch, err := newGiftPatch(request)
	if err != nil {
		return fmt.Errorf("newGiftPatch: %w", err)
	}

	gift, err := s.registryService.UpdateGift(ctx, callerFromContext(ctx), giftID, patch)
	if err != nil {
		return fmt.Errorf("registryService.UpdateGift: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, gift)

	return nil
}

func (s RegistryServer) deleteV1Gift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	giftID, err := value.ParseGiftID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseGiftID: %w", err)
	}

	if err = s.registryService.DeleteGift(ctx, callerFromContext(ctx), giftID); err != nil {
		return fmt.Errorf("registryService.DeleteGift: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}
