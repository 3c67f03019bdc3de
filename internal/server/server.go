package server

// Server объединяет HTTP-серверы отдельных сущностей.
type Server struct {
	ClaimServer
	NotificationServer
	RegistryServer
	ViewServer
	SuggestionServer
}

func NewServer(
	claimServer ClaimServer,
	notificationServer NotificationServer,
	registryServer RegistryServer,
	viewServer ViewServer,
	suggestionServer SuggestionServer,
) Server {
	return Server{
		ClaimServer:        claimServer,
		NotificationServer: notificationServer,
		RegistryServer:     registryServer,
		ViewServer:         viewServer,
		SuggestionServer:   suggestionServer,
	}
}
