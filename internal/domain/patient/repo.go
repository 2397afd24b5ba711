package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repository lookups when no patient matches.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	List(ctx context.Context) ([]*Patient, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Patient, error)
	GetByID(ctx context.Context, id int) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int) error
}
