package dto

// ExportRow is one decomposed placed section in an export. Format
// holds one bracketed token per occupied slot.
type ExportRow struct {
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Instructor string  `json:"instructor"`
	Day        string  `json:"day"`
	Room       string  `json:"room"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Duration   float64 `json:"duration"`
	Format     string  `json:"format"`
}
