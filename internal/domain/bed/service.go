package bed

import (
	"context"
	"errors"
	"fmt"
)

// Service is the bed assignment engine. Upsert is the unguarded
// administrative path; Assign is the guarded clinical path.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListBeds(ctx context.Context) ([]*Bed, error) {
	return s.repo.List(ctx)
}

// Upsert creates the bed on first sight of its (bed_no, ward) pair, or
// force-sets the status of the existing record. Setting a bed Available
// always clears its occupant, regardless of who held it. Unlike Assign,
// no conflict check applies: any status may be overwritten.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*Bed, bool, error) {
	if req.BedNo == "" || req.Ward == "" {
		return nil, false, &ValidationError{Msg: "bed_no and ward are required"}
	}
	if req.Status == "" {
		req.Status = StatusAvailable
	}
	if !req.Status.Valid() {
		return nil, false, &ValidationError{Msg: fmt.Sprintf("invalid status: %s", req.Status)}
	}

	var (
		out     *Bed
		created bool
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Find(ctx, req.BedNo, req.Ward)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if existing == nil {
			b := &Bed{BedNo: req.BedNo, Ward: req.Ward, Status: req.Status}
			if err := s.repo.Create(ctx, b); err != nil {
				return err
			}
			out, created = b, true
			return nil
		}

		existing.Status = req.Status
		if req.Status == StatusAvailable {
			existing.PatientID = nil
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// Assign transitions a bed from Available to Occupied for the given patient.
// The bed is resolved by exact (bed_no, ward) match first, then by ward
// substring containment as a fallback for short ward labels. An already
// Occupied bed fails with ErrOccupied and keeps its occupant. The patient
// reference is stored as-is; it is not checked against the patient registry.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*Bed, error) {
	if in.BedNo == "" || in.Ward == "" || in.PatientID == nil {
		return nil, &ValidationError{Msg: "bed_no, ward, and patient_id are required"}
	}

	var out *Bed
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		b, err := s.repo.Find(ctx, in.BedNo, in.Ward)
		if errors.Is(err, ErrNotFound) {
			b, err = s.repo.FindFuzzy(ctx, in.BedNo, in.Ward)
		}
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{BedNo: in.BedNo, Ward: in.Ward}
		}
		if err != nil {
			return err
		}

		if b.Status == StatusOccupied {
			return ErrOccupied
		}

		b.Status = StatusOccupied
		b.PatientID = in.PatientID
		if err := s.repo.Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
