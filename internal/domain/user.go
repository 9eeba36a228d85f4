package domain

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User carries only what this backend needs to authorize requests.
// Credential storage and verification live outside this service.
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Profile struct {
	UserID  int64  `json:"user_id"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}
