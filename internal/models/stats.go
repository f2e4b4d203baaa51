package models

const (
	// BaseEnrollment is the historical enrollment figure that submitted
	// applications are added on top of.
	BaseEnrollment = 9500
	SuccessRate    = 95
)

type Stats struct {
	StudentsEnrolled     int `json:"studentsEnrolled"`
	CoursesOffered       int `json:"coursesOffered"`
	InstructorsCount     int `json:"instructorsCount"`
	SuccessRate          int `json:"successRate"`
	TotalApplications    int `json:"totalApplications"`
	PendingApplications  int `json:"pendingApplications"`
	ApprovedApplications int `json:"approvedApplications"`
	RejectedApplications int `json:"rejectedApplications"`
}
