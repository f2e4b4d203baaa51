package models

import "time"

// Testimonial.CourseID points at a course but is never checked against the catalog.
type Testimonial struct {
	ID           string    `json:"id" db:"id"`
	StudentName  string    `json:"studentName" db:"student_name"`
	StudentTitle string    `json:"studentTitle" db:"student_title"`
	Content      string    `json:"content" db:"content"`
	CourseID     string    `json:"courseId" db:"course_id"`
	Rating       int       `json:"rating" db:"rating"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
