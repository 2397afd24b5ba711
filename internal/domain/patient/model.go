package patient

// Patient maps to the patients table. The id is generated by the registry;
// the optional doctor reference points at a user in the identity store.
type Patient struct {
	ID       int     `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Age      *int    `db:"age" json:"age"`
	Gender   *string `db:"gender" json:"gender"`
	Symptoms *string `db:"symptoms" json:"symptoms"`
	Date     *string `db:"date" json:"date"`
	DoctorID *string `db:"doctor_id" json:"doctor_id"`
}

// CreateRequest is the POST /patients payload. The doctor reference is
// accepted under both snake_case and camelCase keys; snake_case wins when
// both are present.
type CreateRequest struct {
	Name          string  `json:"name"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	Symptoms      *string `json:"symptoms"`
	Date          *string `json:"date"`
	DoctorID      *string `json:"doctor_id"`
	DoctorIDCamel *string `json:"doctorId"`
}

// Normalize resolves the doctor alias into a Patient record.
func (r CreateRequest) Normalize() *Patient {
	doctorID := r.DoctorID
	if doctorID == nil {
		doctorID = r.DoctorIDCamel
	}
	return &Patient{
		Name:     r.Name,
		Age:      r.Age,
		Gender:   r.Gender,
		Symptoms: r.Symptoms,
		Date:     r.Date,
		DoctorID: doctorID,
	}
}
