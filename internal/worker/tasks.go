// Package worker побочные эффекты брони и предложений: очередь asynq и её обработчики.
package worker

import (
	jsoniter "github.com/json-iterator/go"

	"wishly/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	TypeNotificationAppend     = "notification:append"
	TypeEmailGiftClaimed       = "email:gift_claimed"
	TypeEmailClaimConfirmation = "email:claim_confirmation"
)

// QueueDefault единственная очередь сервиса.
const QueueDefault = "default"
