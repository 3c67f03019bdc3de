package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldMessageID       = "message-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldUserID          = "user-id"

	FieldEventID      = "event-id"
	FieldGiftID       = "gift-id"
	FieldSuggestionID = "suggestion-id"
	FieldSlug         = "slug"
	FieldOutcome      = "outcome"
	FieldTaskType     = "task-type"
	FieldTaskID       = "task-id"
	FieldCacheKey     = "cache-key"
)
