// Package department manages the user's preferred department, using the
// session identity as the source of truth and syncing updates through the
// backend.
package department

import (
	"context"
	"fmt"

	"metroeval/frontend/internal/backend"
	"metroeval/frontend/internal/model"
	"metroeval/frontend/internal/session"
)

type Service struct {
	store  *session.Store
	client *backend.Client
}

func NewService(store *session.Store, client *backend.Client) *Service {
	return &Service{store: store, client: client}
}

// Department returns the effective department for the current user,
// defaulting to General Studies when the profile carries none.
func (s *Service) Department() string {
	if identity := s.store.Snapshot().Identity; identity != nil && identity.Department != "" {
		return identity.Department
	}
	return model.DefaultDepartment
}

// Set updates the department on the backend and re-checks the session so
// the identity reflects the change. On failure the session is left
// untouched, so Department keeps reporting the previous value.
func (s *Service) Set(ctx context.Context, department string) error {
	if !model.ValidDepartment(department) {
		return fmt.Errorf("invalid department %q", department)
	}
	if err := s.client.SetDepartment(ctx, s.store.Cookies(), department); err != nil {
		return err
	}
	s.store.CheckSession(ctx)
	return nil
}
