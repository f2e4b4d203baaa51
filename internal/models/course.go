package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Course struct {
	ID                string          `json:"id" db:"id"`
	Title             string          `json:"title" db:"title"`
	Description       string          `json:"description" db:"description"`
	Duration          string          `json:"duration" db:"duration"`
	Level             string          `json:"level" db:"level"`
	Category          string          `json:"category" db:"category"`
	StandardPrice     decimal.Decimal `json:"standardPrice" db:"standard_price"`
	ProfessionalPrice decimal.Decimal `json:"professionalPrice" db:"professional_price"`
	Curriculum        []string        `json:"curriculum" db:"curriculum"`
	Prerequisites     []string        `json:"prerequisites" db:"prerequisites"`
	ImageURL          *string         `json:"imageUrl" db:"image_url"`
	IsPopular         bool            `json:"isPopular" db:"is_popular"`
	MaxStudents       int             `json:"maxStudents" db:"max_students"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
}

type CourseCategory string

const (
	CourseCategoryCybersecurity  CourseCategory = "cybersecurity"
	CourseCategoryWebDevelopment CourseCategory = "webdevelopment"
	CourseCategoryNetworking     CourseCategory = "networking"
	CourseCategoryOther          CourseCategory = "other"
)

func (c CourseCategory) String() string {
	return string(c)
}

const DefaultMaxStudents = 15
