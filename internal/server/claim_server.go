package server

import (
	"context"
	"fmt"
	"net/http"

	"wishly/internal/domain"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
	"wishly/pkg/httpx/reply"
	"wishly/pkg/httpx/req"
	"wishly/pkg/rest"
)

type claimService interface {
	AttemptClaim(ctx context.Context, caller value.UserID, giftID value.GiftID, message string) error
	ReleaseClaim(ctx context.Context, caller value.UserID, giftID value.GiftID) error
}

type ClaimServer struct {
	claimService claimService
}

func NewClaimServer(claimService claimService) ClaimServer {
	return ClaimServer{
		claimService: claimService,
	}
}

func (s ClaimServer) postV1GiftClaim(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	caller := callerFromContext(ctx)
	if caller.IsZero() {
		return domain.NewError(errcodes.Unauthenticated, "Please sign in to claim a gift")
	}

	giftID, err := value.ParseGiftID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseGiftID: %w", err)
	}

	var request rest.ClaimRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err = s.claimService.AttemptClaim(ctx, caller, giftID, request.Message); err != nil {
		return fmt.Errorf("claimService.AttemptClaim: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

func (s ClaimServer) deleteV1GiftClaim(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	caller := callerFromContext(ctx)
	if caller.IsZero() {
		return domain.NewError(errcodes.Unauthenticated, "Please sign in")
	}

	giftID, err := value.ParseGiftID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseGiftID: %w", err)
	}

	if err = s.claimService.ReleaseClaim(ctx, caller, giftID); err != nil {
		return fmt.Errorf("claimService.ReleaseClaim: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}
