package models

// PredictionRequest is one inventory snapshot sent for risk inference
type PredictionRequest struct {
	MedicineID       uint    `json:"medicine_id"`
	HospitalID       uint    `json:"hospital_id"`
	CurrentStock     int     `json:"current_stock"`
	DailyConsumption float64 `json:"daily_consumption"`
	ReorderLevel     *int    `json:"reorder_level,omitempty"`
	DrugCategory     string  `json:"drug_category,omitempty"`
	HospitalType     string  `json:"hospital_type,omitempty"`
}

type PredictionResult struct {
	ShortagePrediction  bool     `json:"shortage_prediction"`
	ShortageProbability float64  `json:"shortage_probability"`
	RiskLevel           Severity `json:"risk_level"`
	Recommendation      string   `json:"recommendation"`
	Confidence          float64  `json:"confidence"`
	DaysOfSupply        float64  `json:"days_of_supply"`
	MedicineID          *uint    `json:"medicine_id,omitempty"`
	HospitalID          *uint    `json:"hospital_id,omitempty"`
}

type PredictionResponse struct {
	Success    bool             `json:"success"`
	Prediction PredictionResult `json:"prediction"`
	Timestamp  string           `json:"timestamp"`
}

type BatchPredictRequest struct {
	Inventories []PredictionRequest `json:"inventories"`
}

// RiskSummary counts predictions per risk level
type RiskSummary struct {
	Low      int `json:"LOW"`
	Medium   int `json:"MEDIUM"`
	High     int `json:"HIGH"`
	Critical int `json:"CRITICAL"`
}

// HighRisk is the number shown on the "High Risk" card
func (r RiskSummary) HighRisk() int { return r.High + r.Critical }

func (r RiskSummary) Total() int { return r.Low + r.Medium + r.High + r.Critical }

type BatchPredictResponse struct {
	Success          bool               `json:"success"`
	TotalPredictions int                `json:"total_predictions"`
	RiskSummary      RiskSummary        `json:"risk_summary"`
	Predictions      []PredictionResult `json:"predictions"`
}

type ModelStatus struct {
	ModelLoaded  bool   `json:"model_loaded"`
	ModelsExist  bool   `json:"models_exist"`
	FeatureCount int    `json:"feature_count"`
	Status       string `json:"status"`
}

// StoredPrediction is a prediction row persisted by the backend
type StoredPrediction struct {
	ID                    uint     `json:"id"`
	MedicineName          string   `json:"medicine_name"`
	HospitalName          string   `json:"hospital_name"`
	PredictedShortageDate string   `json:"predicted_shortage_date"`
	Confidence            float64  `json:"confidence"`
	RiskLevel             Severity `json:"risk_level"`
}
