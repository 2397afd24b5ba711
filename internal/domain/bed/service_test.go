package bed

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// -- Mock Repository --

// mockRepo keys beds by their natural key and serializes InTx with a mutex,
// mirroring the row-lock behavior of the Postgres repository.
type mockRepo struct {
	mu   sync.Mutex
	beds map[string]*Bed
}

func newMockRepo() *mockRepo {
	return &mockRepo{beds: make(map[string]*Bed)}
}

func key(bedNo, ward string) string { return bedNo + "|" + ward }

func copyBed(b *Bed) *Bed {
	c := *b
	if b.PatientID != nil {
		pid := *b.PatientID
		c.PatientID = &pid
	}
	return &c
}

func (m *mockRepo) List(_ context.Context) ([]*Bed, error) {
	var out []*Bed
	for _, b := range m.beds {
		out = append(out, copyBed(b))
	}
	return out, nil
}

func (m *mockRepo) Find(_ context.Context, bedNo, ward string) (*Bed, error) {
	if b, ok := m.beds[key(bedNo, ward)]; ok {
		return copyBed(b), nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) FindFuzzy(_ context.Context, bedNo, ward string) (*Bed, error) {
	var matches []*Bed
	for _, b := range m.beds {
		if b.BedNo == bedNo && strings.Contains(b.Ward, ward) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Ward < matches[j].Ward })
	return copyBed(matches[0]), nil
}

func (m *mockRepo) Create(_ context.Context, b *Bed) error {
	b.ID = uuid.New()
	m.beds[key(b.BedNo, b.Ward)] = copyBed(b)
	return nil
}

func (m *mockRepo) Update(_ context.Context, b *Bed) error {
	for k, stored := range m.beds {
		if stored.ID == b.ID {
			m.beds[k] = copyBed(b)
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockRepo) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func intPtr(v int) *int { return &v }

// -- Upsert --

func TestUpsert_CreatesAvailableByDefault(t *testing.T) {
	svc, _ := newTestService()

	b, created, err := svc.Upsert(context.Background(), UpsertRequest{BedNo: "101", Ward: "Ward A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected bed to be created")
	}
	if b.Status != StatusAvailable {
		t.Errorf("expected Available, got %s", b.Status)
	}
	if b.PatientID != nil {
		t.Errorf("expected no occupant, got %v", *b.PatientID)
	}

	beds, err := svc.ListBeds(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beds) != 1 {
		t.Fatalf("expected 1 bed, got %d", len(beds))
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A", Status: StatusAvailable}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, created, err := svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A", Status: StatusAvailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected update, not create, on second upsert")
	}
	if b.Status != StatusAvailable || b.PatientID != nil {
		t.Errorf("unexpected state after repeated upsert: %+v", b)
	}

	beds, _ := svc.ListBeds(ctx)
	if len(beds) != 1 {
		t.Fatalf("expected 1 bed after repeated upsert, got %d", len(beds))
	}
}

func TestUpsert_SameBedNoDifferentWards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	_, created, err := svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected a second record for the same bed_no in another ward")
	}
}

func TestUpsert_VacateClearsOccupant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	if _, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: intPtr(7)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, created, err := svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A", Status: StatusAvailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected update of existing bed")
	}
	if b.Status != StatusAvailable {
		t.Errorf("expected Available, got %s", b.Status)
	}
	if b.PatientID != nil {
		t.Errorf("expected occupant cleared, got %v", *b.PatientID)
	}
}

func TestUpsert_ForceSetsStatusWithoutConflictCheck(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: intPtr(7)})

	// The administrative path may overwrite any status, occupied or not.
	b, _, err := svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A", Status: StatusOccupied})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusOccupied {
		t.Errorf("expected Occupied, got %s", b.Status)
	}
	// Occupant is only cleared when the new status is Available.
	if b.PatientID == nil || *b.PatientID != 7 {
		t.Errorf("expected occupant 7 preserved, got %v", b.PatientID)
	}
}

func TestUpsert_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	cases := []UpsertRequest{
		{BedNo: "", Ward: "Ward A"},
		{BedNo: "101", Ward: ""},
		{},
	}
	for _, req := range cases {
		_, _, err := svc.Upsert(context.Background(), req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Upsert(%+v): expected ValidationError, got %v", req, err)
		}
	}
}

func TestUpsert_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Upsert(context.Background(), UpsertRequest{BedNo: "101", Ward: "Ward A", Status: "Maintenance"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// -- Assign --

func TestAssign_TransitionsToOccupied(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	b, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: intPtr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusOccupied {
		t.Errorf("expected Occupied, got %s", b.Status)
	}
	if b.PatientID == nil || *b.PatientID != 7 {
		t.Errorf("expected occupant 7, got %v", b.PatientID)
	}
}

func TestAssign_ConflictKeepsOccupant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	if _, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: intPtr(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: intPtr(2)})
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}

	beds, _ := svc.ListBeds(ctx)
	if len(beds) != 1 {
		t.Fatalf("expected 1 bed, got %d", len(beds))
	}
	if beds[0].PatientID == nil || *beds[0].PatientID != 1 {
		t.Errorf("expected occupant 1 untouched, got %v", beds[0].PatientID)
	}
}

func TestAssign_FuzzyWardFallback(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})
	b, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "A", PatientID: intPtr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Ward != "Ward A" {
		t.Errorf("expected resolution to Ward A, got %s", b.Ward)
	}
	if b.Status != StatusOccupied {
		t.Errorf("expected Occupied, got %s", b.Status)
	}
}

func TestAssign_ExactMatchPreferredOverFuzzy(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "A"})
	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})

	b, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "A", PatientID: intPtr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Ward != "A" {
		t.Errorf("expected exact match on ward A, got %s", b.Ward)
	}
}

func TestAssign_FuzzyTieBreakLowestWard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward B-East"})
	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward B-West"})

	b, err := svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "B-", PatientID: intPtr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Ward != "Ward B-East" {
		t.Errorf("expected lowest-sorted ward, got %s", b.Ward)
	}
}

func TestAssign_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Assign(context.Background(), AssignInput{BedNo: "999", Ward: "Ward Z", PatientID: intPtr(7)})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfe.BedNo != "999" || nfe.Ward != "Ward Z" {
		t.Errorf("expected submitted keys on the error, got %+v", nfe)
	}
}

func TestAssign_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	cases := []AssignInput{
		{Ward: "Ward A", PatientID: intPtr(7)},
		{BedNo: "101", PatientID: intPtr(7)},
		{BedNo: "101", Ward: "Ward A"},
	}
	for _, in := range cases {
		_, err := svc.Assign(context.Background(), in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Assign(%+v): expected ValidationError, got %v", in, err)
		}
	}
}

func TestAssign_ConcurrentRequestsSerialize(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Upsert(ctx, UpsertRequest{BedNo: "101", Ward: "Ward A"})

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pid := i + 1
			_, errs[i] = svc.Assign(ctx, AssignInput{BedNo: "101", Ward: "Ward A", PatientID: &pid})
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrOccupied):
			conflict++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Errorf("expected exactly one success and one conflict, got %d/%d", ok, conflict)
	}

	beds, _ := svc.ListBeds(ctx)
	if beds[0].Status != StatusOccupied || beds[0].PatientID == nil {
		t.Errorf("expected the bed occupied by the winner, got %+v", beds[0])
	}
}
