package domain

// User is the profile of the signed-in account as served by the backend.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	Role     string `json:"role,omitempty"`
}
