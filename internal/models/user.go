package models

// User is the profile of the currently signed-in account
type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Tokens is the pair issued by the backend on login
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest is the hospital-admin signup payload
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
	HospitalName    string `json:"hospital_name"`
	Address         string `json:"address"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// RegisterResponse carries tokens when the backend signs the new user in
type RegisterResponse struct {
	User   map[string]any `json:"user"`
	Tokens *Tokens        `json:"tokens,omitempty"`
}

const RoleHospitalAdmin = "HOSPITAL_ADMIN"
