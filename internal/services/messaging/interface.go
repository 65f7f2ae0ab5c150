package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/crocodile/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetMessage renders a catalog message in the chat's language
	GetMessage(ctx context.Context, input *GetMessageInput) (*GetMessageOutput, error)

	// GetErrorMessage turns a service error into a user-friendly message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
