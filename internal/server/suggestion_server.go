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

type suggestionService interface {
	Suggest(ctx context.Context, caller value.UserID, slug value.Slug, in entity.GiftInput) (entity.Suggestion, error)
	List(ctx context.Context, caller value.UserID, eventID value.EventID) ([]entity.Suggestion, error)
	Approve(ctx context.Context, caller value.UserID, id value.SuggestionID) (entity.Gift, error)
	Ignore(ctx context.Context, caller value.UserID, id value.SuggestionID) error
}

type SuggestionServer struct {
	suggestionService suggestionService
}

func NewSuggestionServer(suggestionService suggestionService) SuggestionServer {
	return SuggestionServer{
		suggestionService: suggestionService,
	}
}

func (s SuggestionServer) postV1PublicEventSuggestion(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.GiftRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in, err := newGiftInput(request)
	if err != nil {
		return fmt.Errorf("newGiftInput: %w", err)
	}

	suggestion, err := s.suggestionService.Suggest(ctx, callerFromContext(ctx), value.Slug(r.PathValue("slug")), in)
	if err != nil {
		return fmt.Errorf("suggestionService.Suggest: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, suggestion)

	return nil
}

func (s SuggestionServer) getV1EventSuggestions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	eventID, err := value.ParseEventID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseEventID: %w", err)
	}

	suggestions, err := s.suggestionService.List(ctx, callerFromContext(ctx), eventID)
	if err != nil {
		return fmt.Errorf("suggestionService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, suggestions)

	return nil
}

func (s SuggestionServer) postV1SuggestionApprove(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := value.ParseSuggestionID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseSuggestionID: %w", err)
	}

	gift, err := s.suggestionService.Approve(ctx, callerFromContext(ctx), id)
	if err != nil {
		return fmt.Errorf("suggestionService.Approve: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, gift)

	return nil
}

func (s SuggestionServer) postV1SuggestionIgnore(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := value.ParseSuggestionID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseSuggestionID: %w", err)
	}

	if err = s.suggestionService.Ignore(ctx, callerFromContext(ctx), id); err != nil {
		return fmt.Errorf("suggestionService.Ignore: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}
