package models

import "time"

// Session is a single training event. Attendees is a set of player ids; the
// whole set is replaced on update, never patched incrementally.
type Session struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	Name      string    `json:"name"`
	Attendees []int     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionView is the wire projection: attendee ids travel as opaque strings
// and the attendance rate is derived against the current roster size.
type SessionView struct {
	ID             int       `json:"id"`
	Date           time.Time `json:"date"`
	Name           string    `json:"name"`
	Attendees      []string  `json:"attendees"`
	AttendanceRate int       `json:"attendanceRate"`
	CreatedAt      time.Time `json:"createdAt"`
}
