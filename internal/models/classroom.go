package models

import (
	"fmt"
	"time"
)

// Classroom is a physical room or a virtual placeholder. Virtual rooms
// carry negative sentinel IDs and have no seat semantics.
type Classroom struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsVirtual reports whether the classroom is an online placeholder.
func (c Classroom) IsVirtual() bool {
	return c.ID < 0
}

// VirtualClassroom builds the nth online placeholder room. Slots are
// numbered from one and map to IDs -1, -2, ...
func VirtualClassroom(n int) Classroom {
	return Classroom{
		ID:   int64(-n),
		Code: fmt.Sprintf("ONLINE-%d", n),
	}
}

// VirtualClassroomPool builds the fixed pool of online placeholders
// appended to every schedule's classroom list.
func VirtualClassroomPool(size int) []Classroom {
	pool := make([]Classroom, 0, size)
	for i := 1; i <= size; i++ {
		pool = append(pool, VirtualClassroom(i))
	}
	return pool
}
