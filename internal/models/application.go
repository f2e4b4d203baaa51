package models

import (
	"time"
)

type Application struct {
	ID                string    `json:"id" db:"id"`
	FirstName         string    `json:"firstName" db:"first_name"`
	LastName          string    `json:"lastName" db:"last_name"`
	Email             string    `json:"email" db:"email"`
	Phone             string    `json:"phone" db:"phone"`
	Course            string    `json:"course" db:"course"`
	Plan              string    `json:"plan" db:"plan"`
	StartDate         string    `json:"startDate" db:"start_date"`
	Experience        string    `json:"experience" db:"experience"`
	Motivation        string    `json:"motivation" db:"motivation"`
	PreviousEducation string    `json:"previousEducation" db:"previous_education"`
	WorkExperience    *string   `json:"workExperience" db:"work_experience"`
	Expectations      string    `json:"expectations" db:"expectations"`
	Status            string    `json:"status" db:"status"` // pending, approved, rejected
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

// IsFinal reports whether no further transition is allowed out of s.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

func IsValidApplicationStatus(status string) bool {
	switch ApplicationStatus(status) {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}
