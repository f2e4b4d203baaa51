package models

import (
	"time"
)

type ContactMessage struct {
	ID             string    `json:"id" db:"id"`
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	CourseInterest *string   `json:"courseInterest" db:"course_interest"`
	Message        string    `json:"message" db:"message"`
	Status         string    `json:"status" db:"status"` // new, responded, closed
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

func (m *ContactMessage) FullName() string {
	return m.FirstName + " " + m.LastName
}

// ContactStatus values other than "new" are accepted by the schema but nothing
// transitions a message into them yet.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusResponded ContactStatus = "responded"
	ContactStatusClosed    ContactStatus = "closed"
)

func (s ContactStatus) String() string {
	return string(s)
}
