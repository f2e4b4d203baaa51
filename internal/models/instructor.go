package models

import "github.com/shopspring/decimal"

type Instructor struct {
	ID             string          `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Title          string          `json:"title" db:"title"`
	Bio            string          `json:"bio" db:"bio"`
	ImageURL       *string         `json:"imageUrl" db:"image_url"`
	Expertise      []string        `json:"expertise" db:"expertise"`
	Experience     string          `json:"experience" db:"experience"`
	Certifications []string        `json:"certifications" db:"certifications"`
	StudentsCount  int             `json:"studentsCount" db:"students_count"`
	Rating         decimal.Decimal `json:"rating" db:"rating"`
}

// DefaultInstructorRating is applied when an instructor is created without a rating.
var DefaultInstructorRating = decimal.RequireFromString("4.9")
