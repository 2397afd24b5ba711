package identity

// User maps to the users table. Staff pick their own identifier (badge or
// employee code), so ID is a caller-supplied string, not a surrogate key.
type User struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Email    string  `db:"email" json:"email"`
	Password string  `db:"password" json:"-"`
	Role     string  `db:"role" json:"role"`
	Gender   *string `db:"gender" json:"gender,omitempty"`
}
