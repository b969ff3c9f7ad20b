package models

import "time"

// Employee statuses.
const (
	EmployeeActive   = "ACTIVE"
	EmployeeInactive = "INACTIVE"
)

type Employee struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type EmployeeCreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}
