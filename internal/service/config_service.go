package service

import (
	"context"
	"fmt"

	"echo-widget/internal/brandconfig"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
)

// ConfigResolver is implemented by brandconfig.Resolver.
type ConfigResolver interface {
	Resolve(ctx context.Context, recordID string) (model.Config, brandconfig.Source)
	Invalidate(ctx context.Context, recordID string) error
}

// ConfigService serves resolved widget configurations.
type ConfigService struct {
	resolver ConfigResolver
}

func NewConfigService(resolver ConfigResolver) *ConfigService {
	return &ConfigService{resolver: resolver}
}

// Resolve returns the configuration a new instance for recordID would get.
func (s *ConfigService) Resolve(ctx context.Context, recordID string) (*model.ResolvedConfig, error) {
	cfg, source := s.resolver.Resolve(ctx, recordID)
	return &model.ResolvedConfig{RecordID: recordID, Source: string(source), Config: cfg}, nil
}

// Invalidate forgets the cached overlay of recordID.
func (s *ConfigService) Invalidate(ctx context.Context, recordID string) error {
	if recordID == "" {
		return fmt.Errorf("%w: record id is required", app_errors.ErrValidation)
	}
	if err := s.resolver.Invalidate(ctx, recordID); err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	return nil
}
