package errcodes

// ErrorCode is the machine readable code returned to API clients.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	TimeoutExceeded     ErrorCode = "TimeoutExceeded"
	Forbidden           ErrorCode = "Forbidden"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"
	Unauthenticated     ErrorCode = "Unauthenticated"
	TooManyRequests     ErrorCode = "TooManyRequests"

	InvalidEventID        ErrorCode = "InvalidEventID"
	InvalidGiftID         ErrorCode = "InvalidGiftID"
	InvalidNotificationID ErrorCode = "InvalidNotificationID"
	InvalidSuggestionID   ErrorCode = "InvalidSuggestionID"
	InvalidEventType      ErrorCode = "InvalidEventType"
	InvalidEventDate      ErrorCode = "InvalidEventDate"
	InvalidPrice          ErrorCode = "InvalidPrice"
	InvalidPaging         ErrorCode = "InvalidPaging"

	EventNotFound    ErrorCode = "EventNotFound"
	EventInactive    ErrorCode = "EventInactive"
	SlugUnavailable  ErrorCode = "SlugUnavailable"
	GiftNotFound     ErrorCode = "GiftNotFound"
	GiftLimitReached ErrorCode = "GiftLimitReached"
	UserNotFound     ErrorCode = "UserNotFound"

	// Claim outcomes.
	SelfClaimDenied    ErrorCode = "SelfClaimDenied"
	AlreadyClaimed     ErrorCode = "AlreadyClaimed"
	AlreadyClaimedRace ErrorCode = "AlreadyClaimedRace"
	ClaimNotFound      ErrorCode = "ClaimNotFound"

	SuggestionNotFound   ErrorCode = "SuggestionNotFound"
	SuggestionNotPending ErrorCode = "SuggestionNotPending"
	SelfSuggestionDenied ErrorCode = "SelfSuggestionDenied"
)
