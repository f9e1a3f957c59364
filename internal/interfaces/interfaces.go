package interfaces

import (
	"context"
	"io"

	"echo-widget/internal/model"
)

// These contracts decouple the API layer from the service layer so handlers
// can be tested against mocks.

// WidgetService defines the contract for widget instance operations.
type WidgetService interface {
	CreateSession(ctx context.Context, recordID string) (*model.SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*model.SessionView, error)
	SendMessage(ctx context.Context, sessionID, text string) (*model.Message, error)
	CloseSession(ctx context.Context, sessionID string) error
	StreamPlaceholder(ctx context.Context, sessionID string) (<-chan model.PlaceholderFrame, error)
	RenderWidget(ctx context.Context, sessionID string, w io.Writer) error
}

// ConfigService defines the contract for resolving widget configurations.
type ConfigService interface {
	Resolve(ctx context.Context, recordID string) (*model.ResolvedConfig, error)
	Invalidate(ctx context.Context, recordID string) error
}
