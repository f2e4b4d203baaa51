package models

import "github.com/shopspring/decimal"

// Data Transfer Objects. None of them carry id, createdAt or status: those are
// always assigned server-side.

type CreateCourseRequest struct {
	Title             string           `json:"title" validate:"required"`
	Description       string           `json:"description" validate:"required"`
	Duration          string           `json:"duration" validate:"required"`
	Level             string           `json:"level" validate:"required"`
	Category          string           `json:"category" validate:"required,oneof=cybersecurity webdevelopment networking other"`
	StandardPrice     *decimal.Decimal `json:"standardPrice" validate:"required,gte=0"`
	ProfessionalPrice *decimal.Decimal `json:"professionalPrice" validate:"required,gte=0"`
	Curriculum        []string         `json:"curriculum" validate:"required"`
	Prerequisites     []string         `json:"prerequisites" validate:"required"`
	ImageURL          *string          `json:"imageUrl"`
	IsPopular         *bool            `json:"isPopular"`
	MaxStudents       *int             `json:"maxStudents" validate:"omitempty,gt=0"`
}

type CreateInstructorRequest struct {
	Name           string           `json:"name" validate:"required,min=2"`
	Title          string           `json:"title" validate:"required"`
	Bio            string           `json:"bio" validate:"required"`
	ImageURL       *string          `json:"imageUrl"`
	Expertise      []string         `json:"expertise" validate:"required"`
	Experience     string           `json:"experience" validate:"required"`
	Certifications []string         `json:"certifications" validate:"required"`
	StudentsCount  *int             `json:"studentsCount" validate:"omitempty,gte=0"`
	Rating         *decimal.Decimal `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type CreateTestimonialRequest struct {
	StudentName  string `json:"studentName" validate:"required,min=2"`
	StudentTitle string `json:"studentTitle" validate:"required"`
	Content      string `json:"content" validate:"required"`
	CourseID     string `json:"courseId"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
}

type CreateApplicationRequest struct {
	FirstName         string  `json:"firstName" validate:"required,min=2"`
	LastName          string  `json:"lastName" validate:"required,min=2"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required,min=10"`
	Course            string  `json:"course" validate:"required"`
	Plan              string  `json:"plan" validate:"required"`
	StartDate         string  `json:"startDate" validate:"required"`
	Experience        string  `json:"experience" validate:"required"`
	Motivation        string  `json:"motivation" validate:"required,min=50"`
	PreviousEducation string  `json:"previousEducation" validate:"required,min=10"`
	WorkExperience    *string `json:"workExperience"`
	Expectations      string  `json:"expectations" validate:"required,min=30"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type CreateContactMessageRequest struct {
	FirstName      string  `json:"firstName" validate:"required,min=2"`
	LastName       string  `json:"lastName" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          *string `json:"phone"`
	CourseInterest *string `json:"courseInterest"`
	Message        string  `json:"message" validate:"required"`
}

type ApplicationResponse struct {
	Message     string       `json:"message"`
	Application *Application `json:"application"`
}

type ContactMessageResponse struct {
	Message        string          `json:"message"`
	ContactMessage *ContactMessage `json:"contactMessage"`
}
