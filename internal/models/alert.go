package models

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// AlertStatus transitions are enforced by the backend, not here
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "ACTIVE"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
)

// Alert represents a shortage alert for one hospital/medicine pair
type Alert struct {
	ID                    uint        `json:"id"`
	Hospital              uint        `json:"hospital"`
	HospitalName          string      `json:"hospital_name,omitempty"`
	Medicine              uint        `json:"medicine"`
	MedicineName          string      `json:"medicine_name,omitempty"`
	Severity              Severity    `json:"severity"`
	Status                AlertStatus `json:"status"`
	CurrentStock          int         `json:"current_stock"`
	PredictedStockoutDate *string     `json:"predicted_stockout_date,omitempty"`
	ConfidenceScore       Decimal     `json:"confidence_score,omitempty"`
	Message               string      `json:"message,omitempty"`
	CreatedAt             string      `json:"created_at,omitempty"`
}

type AlertUpdate struct {
	Status   *AlertStatus `json:"status,omitempty"`
	Severity *Severity    `json:"severity,omitempty"`
	Message  *string      `json:"message,omitempty"`
}
