package bed

import (
	"time"

	"github.com/google/uuid"
)

// Status enumerates the occupancy states a bed may hold. Maintenance and
// Reserved are anticipated extensions and are rejected until the registry
// supports them.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusOccupied  Status = "Occupied"
)

var validStatuses = map[Status]bool{
	StatusAvailable: true,
	StatusOccupied:  true,
}

// Valid reports whether s is a status the registry accepts today.
func (s Status) Valid() bool { return validStatuses[s] }

// Bed maps to the beds table. One row per physical bed; (bed_no, ward) is the
// natural key since bed numbers repeat across wards. PatientID is nil
// whenever the bed is Available.
type Bed struct {
	ID        uuid.UUID `db:"id" json:"-"`
	BedNo     string    `db:"bed_no" json:"bed_no"`
	Ward      string    `db:"ward" json:"ward"`
	Status    Status    `db:"status" json:"status"`
	PatientID *int      `db:"patient_id" json:"patient_id"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// UpsertRequest is the POST /beds payload.
type UpsertRequest struct {
	BedNo  string `json:"bed_no"`
	Ward   string `json:"ward"`
	Status Status `json:"status"`
}

// AssignRequest is the POST /assign-bed payload. The bed number and patient
// reference are accepted under both snake_case and camelCase keys.
type AssignRequest struct {
	BedNo          string `json:"bed_no"`
	BedNoCamel     string `json:"bedNo"`
	Ward           string `json:"ward"`
	PatientID      *int   `json:"patient_id"`
	PatientIDCamel *int   `json:"patientId"`
}

// AssignInput is the normalized form of an AssignRequest.
type AssignInput struct {
	BedNo     string
	Ward      string
	PatientID *int
}

// Normalize resolves the alias keys into a single typed input. The
// snake_case key wins when a field arrives under both spellings.
func (r AssignRequest) Normalize() AssignInput {
	in := AssignInput{BedNo: r.BedNo, Ward: r.Ward, PatientID: r.PatientID}
	if in.BedNo == "" {
		in.BedNo = r.BedNoCamel
	}
	if in.PatientID == nil {
		in.PatientID = r.PatientIDCamel
	}
	return in
}
