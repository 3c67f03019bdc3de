package value

type NotificationType string

const (
	NotificationTypeClaim      NotificationType = "claim"
	NotificationTypeSuggestion NotificationType = "suggestion"
)

func (t NotificationType) String() string {
	return string(t)
}

type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusApproved SuggestionStatus = "approved"
	SuggestionStatusIgnored  SuggestionStatus = "ignored"
)

func (s SuggestionStatus) String() string {
	return string(s)
}
