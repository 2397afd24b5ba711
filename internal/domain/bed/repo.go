package bed

import "context"

type Repository interface {
	// List returns every bed record. Order is not part of the contract.
	List(ctx context.Context) ([]*Bed, error)

	// Find returns the bed exactly matching (bedNo, ward), or ErrNotFound.
	Find(ctx context.Context, bedNo, ward string) (*Bed, error)

	// FindFuzzy returns a bed whose ward contains ward as a substring
	// (case-sensitive), or ErrNotFound. When several wards match, the
	// lowest-sorted ward wins.
	FindFuzzy(ctx context.Context, bedNo, ward string) (*Bed, error)

	Create(ctx context.Context, b *Bed) error
	Update(ctx context.Context, b *Bed) error

	// InTx runs fn as one atomic unit of work. Lookups inside fn take row
	// locks so a concurrent read-check-write on the same bed serializes.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
