package models

import "time"

// Player is a rostered individual. Two producers create players: the direct
// roster endpoint (name/age/jersey) and the approval workflow, which fills the
// profile columns from the source registration and sets RegistrationID.
type Player struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Age              *int       `json:"age,omitempty"`
	Jersey           *int       `json:"jersey,omitempty"`
	Email            *string    `json:"email,omitempty"`
	DOB              *time.Time `json:"dob,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	ParentName       *string    `json:"parentName,omitempty"`
	ParentContact    *string    `json:"parentContact,omitempty"`
	RegistrationID   *int       `json:"registrationId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
