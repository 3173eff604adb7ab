package models

// Medicine is a catalog entry
type Medicine struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	GenericName  string `json:"generic_name,omitempty"`
	Category     string `json:"category"`
	Strength     string `json:"strength,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	IsEssential  bool   `json:"is_essential"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type MedicineUpdate struct {
	Name         *string `json:"name,omitempty"`
	GenericName  *string `json:"generic_name,omitempty"`
	Category     *string `json:"category,omitempty"`
	Strength     *string `json:"strength,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	IsEssential  *bool   `json:"is_essential,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
