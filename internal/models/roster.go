package models

import "time"

// RosterDoctor is one doctor's slice of the roster snapshot: the doctor's own
// patients and the diagnoses the doctor authored. Built fresh per request,
// never persisted.
type RosterDoctor struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Profile   Profile           `json:"profile"`
	Patients  []RosterPatient   `json:"patients"`
	Diagnoses []RosterDiagnosis `json:"diagnoses"`
}

// RosterPatient is the patient view inside a roster snapshot
type RosterPatient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	ICD11     string    `json:"icd11,omitempty"`
	Disease   string    `json:"disease,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RosterDiagnosis is a diagnosis in a roster snapshot, tagged with the
// patient it belongs to. ID is always set, issued at read time if the stored
// record had none.
type RosterDiagnosis struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	ICD11       string     `json:"icd11,omitempty"`
	Disease     string     `json:"disease,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
