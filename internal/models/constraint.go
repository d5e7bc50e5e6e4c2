package models

import "github.com/lib/pq"

// InstructorConstraint lists the time tokens or ranges an instructor
// cannot teach on one day. Entries are either an exact slot token
// ("09:00 - 10:00") or a containment range ("08:00-12:00").
type InstructorConstraint struct {
	ID         int64          `db:"id" json:"id"`
	ScheduleID int64          `db:"schedule_id" json:"schedule_id"`
	Instructor string         `db:"instructor" json:"instructor"`
	Day        string         `db:"day_of_the_week" json:"day_of_the_week"`
	TimePeriod pq.StringArray `db:"time_period" json:"time_period"`
}
