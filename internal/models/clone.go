package models

import "slices"

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Clone returns a deep copy of c; list and optional fields do not share memory with c.
func (c Course) Clone() Course {
	c.Curriculum = slices.Clone(c.Curriculum)
	c.Prerequisites = slices.Clone(c.Prerequisites)
	c.ImageURL = cloneString(c.ImageURL)
	return c
}

func (i Instructor) Clone() Instructor {
	i.Expertise = slices.Clone(i.Expertise)
	i.Certifications = slices.Clone(i.Certifications)
	i.ImageURL = cloneString(i.ImageURL)
	return i
}

func (t Testimonial) Clone() Testimonial {
	return t
}

func (a Application) Clone() Application {
	a.WorkExperience = cloneString(a.WorkExperience)
	return a
}

func (m ContactMessage) Clone() ContactMessage {
	m.Phone = cloneString(m.Phone)
	m.CourseInterest = cloneString(m.CourseInterest)
	return m
}
