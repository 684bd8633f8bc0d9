package models

// User is read-only here; rows are owned by the account service.
type User struct {
	ID               int64   `json:"id"`
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Gender           *string `json:"gender"`
	Age              *int32  `json:"age"`
	BloodType        *string `json:"blood_type"`
	SpecialDiagnosis *string `json:"special_diagnosis"`
}

type Prescription struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"user_id"`
	DrugID int64   `json:"drug_id"`
	Dosage *string `json:"dosage"`
	Intake *string `json:"intake"`
}

// ActivePrescription is a prescription joined with its drug name.
type ActivePrescription struct {
	ID       int64   `json:"id"`
	DrugID   int64   `json:"drug_id"`
	DrugName string  `json:"drug_name"`
	Dosage   *string `json:"dosage"`
	Intake   *string `json:"intake"`
}

type Drug struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile is the prompt-ready view of a user and their prescriptions.
type Profile struct {
	MedicationSummary string `json:"medication_summary"`
	Gender            string `json:"gender"`
	Age               string `json:"age"`
}
