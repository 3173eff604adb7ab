package models

// Hospital represents a hospital/medical facility owned by the backend
type Hospital struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	HospitalType       string `json:"hospital_type"`
	BedCapacity        int    `json:"bed_capacity"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city"`
	State              string `json:"state"`
	Pincode            string `json:"pincode,omitempty"`
	ContactPerson      string `json:"contact_person,omitempty"`
	ContactEmail       string `json:"contact_email,omitempty"`
	ContactPhone       string `json:"contact_phone,omitempty"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// HospitalUpdate is a PATCH body; nil fields are left untouched
type HospitalUpdate struct {
	Name               *string `json:"name,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	HospitalType       *string `json:"hospital_type,omitempty"`
	BedCapacity        *int    `json:"bed_capacity,omitempty"`
	Address            *string `json:"address,omitempty"`
	City               *string `json:"city,omitempty"`
	State              *string `json:"state,omitempty"`
	Pincode            *string `json:"pincode,omitempty"`
	ContactPerson      *string `json:"contact_person,omitempty"`
	ContactEmail       *string `json:"contact_email,omitempty"`
	ContactPhone       *string `json:"contact_phone,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}
