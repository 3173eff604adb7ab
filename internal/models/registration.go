package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const minPasswordLength = 8

// RegistrationForm is what the sign-up form posts
type RegistrationForm struct {
	HospitalName    string `json:"hospital_name" form:"hospital_name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Address         string `json:"address" form:"address"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Validate checks fields in the order the form shows them and returns the
// first problem found.
func (f RegistrationForm) Validate() error {
	switch {
	case f.HospitalName == "":
		return errors.New("Hospital Name is required")
	case f.Email == "":
		return errors.New("Email is required")
	case f.Phone == "":
		return errors.New("Phone is required")
	case f.Address == "":
		return errors.New("Address is required")
	case f.Password == "":
		return errors.New("Password is required")
	case f.Password != f.ConfirmPassword:
		return errors.New("Passwords do not match.")
	case len(f.Password) < minPasswordLength:
		return fmt.Errorf("Password must be at least %d characters long.", minPasswordLength)
	}
	return nil
}

// Request builds the hospital-admin signup payload. The username is the
// email's local part plus a random suffix.
func (f RegistrationForm) Request() RegisterRequest {
	local, _, _ := strings.Cut(f.Email, "@")
	return RegisterRequest{
		Username:        fmt.Sprintf("%s%d", local, rand.Intn(1000)),
		Email:           f.Email,
		Password:        f.Password,
		PasswordConfirm: f.ConfirmPassword,
		Phone:           f.Phone,
		Role:            RoleHospitalAdmin,
		HospitalName:    f.HospitalName,
		Address:         f.Address,
		FirstName:       "Admin",
		LastName:        "User",
	}
}
