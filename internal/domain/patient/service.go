package patient

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new patient record and fills in its generated id.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// ListForDoctor returns the patients assigned to doctorID. An empty doctorID
// returns every patient so a client that omits the filter still renders data.
func (s *Service) ListForDoctor(ctx context.Context, doctorID string) ([]*Patient, error) {
	if doctorID == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) DeletePatient(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
