package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
	"wishly/pkg/httpx/reply"
)

type notificationService interface {
	Feed(ctx context.Context, userID value.UserID, limit int) (entity.NotificationFeed, error)
	MarkRead(ctx context.Context, id value.NotificationID, userID value.UserID) error
	MarkAllRead(ctx context.Context, userID value.UserID) error
}

type NotificationServer struct {
	notificationService notificationService
}

func NewNotificationServer(notificationService notificationService) NotificationServer {
	return NotificationServer{
		notificationService: notificationService,
	}
}

func (s NotificationServer) getV1Notifications(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error

		if limit, err = strconv.Atoi(raw); err != nil {
			return domain.WrapError(err, errcodes.InvalidPaging, "limit must be a number")
		}
	}

	feed, err := s.notificationService.Feed(ctx, callerFromContext(ctx), limit)
	if err != nil {
		return fmt.Errorf("notificationService.Feed: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, feed)

	return nil
}

func (s NotificationServer) patchV1Notification(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := value.ParseNotificationID(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("value.ParseNotificationID: %w", err)
	}

	if err = s.notificationService.MarkRead(ctx, id, callerFromContext(ctx)); err != nil {
		return fmt.Errorf("notificationService.MarkRead: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

func (s NotificationServer) patchV1NotificationsReadAll(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.notificationService.MarkAllRead(ctx, callerFromContext(ctx)); err != nil {
		return fmt.Errorf("notificationService.MarkAllRead: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}
