package user

type User struct {
	ID           int    `json:"userId"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
