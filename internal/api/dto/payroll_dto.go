package dto

import "time"

// PayrollRecordRequest is one uploaded salary record. Salary is in cents.
type PayrollRecordRequest struct {
	Employee string `json:"employee" validate:"required,email"`
	Period   string `json:"period" validate:"required"`
	Salary   int64  `json:"salary" validate:"gte=0"`
}

// PayrollUploadResponse confirms a batch upload.
type PayrollUploadResponse struct {
	Status string `json:"status"`
}

// PayrollResponse is the employee-facing view of one salary record.
type PayrollResponse struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Period   string `json:"period"`
	Salary   string `json:"salary"`
}

// SecurityEventResponse is one audit-log row.
type SecurityEventResponse struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Action  string    `json:"action"`
	Subject string    `json:"subject"`
	Object  string    `json:"object"`
	Path    string    `json:"path"`
}
