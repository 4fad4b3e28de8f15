package models

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
)

// FileRef points at an object uploaded to the blob store before the
// registration was submitted. A reference without a Key was never uploaded.
type FileRef struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Key         string    `json:"key"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Registration struct {
	ID               int                `json:"id"`
	Email            string             `json:"email"`
	PlayerName       string             `json:"playerName"`
	Phone            string             `json:"phone"`
	EmergencyContact string             `json:"emergencyContact"`
	DOB              *time.Time         `json:"dob,omitempty"`
	Gender           *string            `json:"gender,omitempty"`
	ParentName       *string            `json:"parentName,omitempty"`
	Relationship     *string            `json:"relationship,omitempty"`
	ParentContact    *string            `json:"parentContact,omitempty"`
	Occupation       *string            `json:"occupation,omitempty"`
	Position         *string            `json:"position,omitempty"`
	Purpose          *string            `json:"purpose,omitempty"`
	YearsExp         *string            `json:"yearsExp,omitempty"`
	PreviousClub     *string            `json:"previousClub,omitempty"`
	Injuries         *string            `json:"injuries,omitempty"`

	ConsentParticipate bool `json:"consentParticipate"`
	ConsentLiability   bool `json:"consentLiability"`
	ConsentMedia       bool `json:"consentMedia"`
	ConsentAIFF        bool `json:"consentAIFF"`

	Program       *string `json:"program,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	UpiID         *string `json:"upiId,omitempty"`

	Photo          *FileRef `json:"photo,omitempty"`
	IDDoc          *FileRef `json:"idDoc,omitempty"`
	BirthProof     *FileRef `json:"birthProof,omitempty"`
	PaymentReceipt *FileRef `json:"paymentReceipt,omitempty"`

	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// RegistrationSummary is the minimal projection shown in the dashboard queue.
type RegistrationSummary struct {
	ID         int                `json:"id"`
	PlayerName string             `json:"playerName"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Program    *string            `json:"program,omitempty"`
	Status     RegistrationStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}
