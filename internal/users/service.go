package users

import (
	"context"
	"fmt"

	"github.com/soulbrew/blog-services/internal/models"
	"github.com/soulbrew/blog-services/pkg/logger"
)

// Service provisions local user records from identity provider claims
type Service struct {
	repo UserRepository
}

// NewService creates a new user service
func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// UpsertFromClaims creates or updates the user matching the OIDC claims
// carried in the ID token. The subject claim is the stable identity key.
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("claims missing sub")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	avatar, _ := claims["picture"].(string)
	if name == "" {
		name, _ = claims["preferred_username"].(string)
	}

	u := &models.User{
		Sub:    sub,
		Email:  email,
		Name:   name,
		Avatar: avatar,
	}
	updated, err := s.repo.UpsertBySub(ctx, u)
	if err != nil {
		logger.Errorf("users: upsert for sub %s failed: %v", sub, err)
		return nil, err
	}
	return updated, nil
}

// GetBySub fetches the user for an identity provider subject, or nil if absent
func (s *Service) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	return s.repo.GetBySub(ctx, sub)
}
