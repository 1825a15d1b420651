package request

type CreateDoctor struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Specialty   string `json:"specialty"`
	PhoneNumber string `json:"phone_number"`
}

type UpdateDoctor struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Specialty   string `json:"specialty"`
	PhoneNumber string `json:"phone_number"`
}
