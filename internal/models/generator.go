package models

// Generator error_type values reported per failed section.
const (
	GenErrCapacityConstraint = "CAPACITY_CONSTRAINT"
	GenErrTimeConstraint     = "TIME_CONSTRAINT"
	GenErrInstructorConflict = "INSTRUCTOR_CONFLICT"
	GenErrNoAvailableSlots   = "NO_AVAILABLE_SLOTS"
	GenErrNoClassroom        = "NO_CLASSROOM"
	GenErrDurationMismatch   = "DURATION_MISMATCH"
	GenErrUnknown            = "UNKNOWN_ERROR"
)

// GenerateStats summarises one run of the external generator.
type GenerateStats struct {
	TotalCourses         int `json:"totalCourses"`
	TotalSections        int `json:"totalSections"`
	ScheduledAssignments int `json:"scheduledAssignments"`
	ConstraintsApplied   int `json:"constraintsApplied"`
	FailedAssignments    int `json:"failedAssignments"`
}

// GenerateError describes one section the generator could not place.
type GenerateError struct {
	SectionID     int64          `json:"section_id"`
	SectionNumber int64          `json:"section_number"`
	CourseCode    string         `json:"course_code"`
	ErrorType     string         `json:"error_type"`
	ErrorMessage  string         `json:"error_message"`
	Details       map[string]any `json:"details,omitempty"`
}

// GenerateResult is the external generator's response payload. The
// inline schedule is informational only; the engine re-fetches all
// collections afterwards instead of trusting it.
type GenerateResult struct {
	Success  bool            `json:"success"`
	Schedule []SaveRow       `json:"schedule"`
	Stats    GenerateStats   `json:"stats"`
	Errors   []GenerateError `json:"errors"`
	Warnings []string        `json:"warnings"`
}
