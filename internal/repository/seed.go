package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talentshive/training-site/internal/models"
)

// Seed inserts the fixed sample catalog. Records whose id is already stored are
// skipped, so seeding a persistent store on every start is safe.
func Seed(ctx context.Context, repos *Repositories, now time.Time) error {
	for _, course := range seedCourses(now) {
		existing, err := repos.Courses.GetByID(ctx, course.ID)
		if err != nil {
			return fmt.Errorf("failed to check course %s: %w", course.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := repos.Courses.Create(ctx, &course); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.ID, err)
		}
	}

	for _, instructor := range seedInstructors() {
		existing, err := repos.Instructors.GetByID(ctx, instructor.ID)
		if err != nil {
			return fmt.Errorf("failed to check instructor %s: %w", instructor.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := repos.Instructors.Create(ctx, &instructor); err != nil {
			return fmt.Errorf("failed to seed instructor %s: %w", instructor.ID, err)
		}
	}

	stored, err := repos.Testimonials.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list testimonials: %w", err)
	}
	seen := make(map[string]bool, len(stored))
	for _, t := range stored {
		seen[t.ID] = true
	}

	for _, testimonial := range seedTestimonials(now) {
		if seen[testimonial.ID] {
			continue
		}
		if err := repos.Testimonials.Create(ctx, &testimonial); err != nil {
			return fmt.Errorf("failed to seed testimonial %s: %w", testimonial.ID, err)
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}

func seedCourses(now time.Time) []models.Course {
	return []models.Course{
		{
			ID:                "cyber-001",
			Title:             "Cybersecurity Junior Analyst",
			Description:       "Master cybersecurity fundamentals, threat detection, and incident response. Protect organizations from evolving cyber threats.",
			Duration:          "6 weeks intensive training",
			Level:             "Beginner to Intermediate",
			Category:          models.CourseCategoryCybersecurity.String(),
			StandardPrice:     decimal.NewFromInt(200000),
			ProfessionalPrice: decimal.NewFromInt(300000),
			Curriculum: []string{
				"Introduction to Cybersecurity",
				"Threat Detection and Analysis",
				"Incident Response",
				"Security Tools and Technologies",
				"Risk Assessment",
				"Compliance and Regulations",
			},
			Prerequisites: []string{"Basic computer skills", "Familiarity with networking concepts"},
			ImageURL:      strPtr("https://images.unsplash.com/photo-1550751827-4bd374c3f58b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"),
			IsPopular:     true,
			MaxStudents:   models.DefaultMaxStudents,
			CreatedAt:     now,
		},
		{
			ID:                "webdev-001",
			Title:             "Full-Stack Web Development",
			Description:       "Build modern web applications with React, Node.js, and databases. From frontend to backend development mastery.",
			Duration:          "8 weeks intensive training",
			Level:             "Beginner to Advanced",
			Category:          models.CourseCategoryWebDevelopment.String(),
			StandardPrice:     decimal.NewFromInt(200000),
			ProfessionalPrice: decimal.NewFromInt(250000),
			Curriculum: []string{
				"HTML, CSS & JavaScript Fundamentals",
				"React.js Development",
				"Node.js & Express.js",
				"Database Design and Management",
				"API Development",
				"Deployment and DevOps",
			},
			Prerequisites: []string{"Basic computer skills", "Logical thinking ability"},
			ImageURL:      strPtr("https://images.unsplash.com/photo-1587620962725-abab7fe55159?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"),
			MaxStudents:   models.DefaultMaxStudents,
			CreatedAt:     now,
		},
		{
			ID:                "network-001",
			Title:             "Network Infrastructure",
			Description:       "Configure and manage enterprise networks, routers, switches, and security protocols. CCNA preparation included.",
			Duration:          "6 weeks hands-on training",
			Level:             "Intermediate",
			Category:          models.CourseCategoryNetworking.String(),
			StandardPrice:     decimal.NewFromInt(200000),
			ProfessionalPrice: decimal.NewFromInt(280000),
			Curriculum: []string{
				"Networking Fundamentals",
				"Router and Switch Configuration",
				"Network Security",
				"VLAN and Subnetting",
				"Network Troubleshooting",
				"CCNA Exam Preparation",
			},
			Prerequisites: []string{"Basic IT knowledge", "Understanding of computer systems"},
			ImageURL:      strPtr("https://images.unsplash.com/photo-1558494949-ef010cbdcc31?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"),
			MaxStudents:   models.DefaultMaxStudents,
			CreatedAt:     now,
		},
	}
}

func seedInstructors() []models.Instructor {
	return []models.Instructor{
		{
			ID:             "instructor-001",
			Name:           "Victor Momoh",
			Title:          "Lead Cybersecurity Instructor",
			Bio:            "AZ-900 & AZ-104 certified cloud security expert with 8+ years experience in enterprise cybersecurity and threat analysis.",
			ImageURL:       strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400"),
			Expertise:      []string{"Cybersecurity", "Cloud Security", "Threat Analysis", "Penetration Testing"},
			Experience:     "8+ years",
			Certifications: []string{"AZ-900", "AZ-104", "CISSP", "CEH"},
			StudentsCount:  500,
			Rating:         decimal.RequireFromString("4.9"),
		},
		{
			ID:             "instructor-002",
			Name:           "Sarah Adebayo",
			Title:          "Senior Full-Stack Instructor",
			Bio:            "Former Google software engineer with expertise in React, Node.js, and modern web technologies. 6+ years teaching experience.",
			ImageURL:       strPtr("https://images.unsplash.com/photo-1494790108755-2616b612b977?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400"),
			Expertise:      []string{"React.js", "Node.js", "JavaScript", "Full-Stack Development"},
			Experience:     "6+ years",
			Certifications: []string{"AWS Solutions Architect", "Google Cloud Professional", "MongoDB Certified"},
			StudentsCount:  750,
			Rating:         decimal.RequireFromString("4.8"),
		},
		{
			ID:             "instructor-003",
			Name:           "Emeka Okafor",
			Title:          "Network Infrastructure Expert",
			Bio:            "CCNP certified network engineer with 10+ years at Cisco. Specializes in enterprise network design and security.",
			ImageURL:       strPtr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400"),
			Expertise:      []string{"Networking", "Cisco Technologies", "Network Security", "Enterprise Infrastructure"},
			Experience:     "10+ years",
			Certifications: []string{"CCNP", "CCNA Security", "Cisco DevNet Professional"},
			StudentsCount:  400,
			Rating:         decimal.RequireFromString("4.9"),
		},
	}
}

func seedTestimonials(now time.Time) []models.Testimonial {
	return []models.Testimonial{
		{
			ID:           "testimonial-001",
			StudentName:  "Adebayo Olumide",
			StudentTitle: "Cybersecurity Analyst, First Bank",
			Content:      "The cybersecurity course transformed my career. I went from having no IT background to landing a security analyst role at a major bank within 3 months of graduating.",
			CourseID:     "cyber-001",
			Rating:       5,
			CreatedAt:    now,
		},
		{
			ID:           "testimonial-002",
			StudentName:  "Folake Nwosu",
			StudentTitle: "Founder, TechSolutions Nigeria",
			Content:      "The web development program gave me the skills I needed to start my own tech company. The instructors were incredibly supportive and the curriculum was very current.",
			CourseID:     "webdev-001",
			Rating:       5,
			CreatedAt:    now,
		},
		{
			ID:           "testimonial-003",
			StudentName:  "Chinedu Aba",
			StudentTitle: "Network Engineer, MTN Nigeria",
			Content:      "The networking course prepared me for my CCNA certification. The hands-on lab sessions with real equipment made all the difference in my understanding.",
			CourseID:     "network-001",
			Rating:       5,
			CreatedAt:    now,
		},
	}
}
