package handlers

import (
	"encoding/json"
	"strings"

	"github.com/athlos-fc/academy-system/services"
)

// The registration form is filled by parents on whatever device they have.
// The submission policy is deliberately permissive: an optional field whose
// JSON shape is not the expected one is dropped, not rejected. Only the four
// required fields can fail a submission, and only by being empty.

// looseString decodes a JSON string, and silently becomes empty for any other
// JSON shape.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

// looseBool mirrors JavaScript truthiness for the consent checkboxes: true,
// non-zero numbers and non-empty strings (except "false"/"0") all count.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	switch val := v.(type) {
	case bool:
		*b = looseBool(val)
	case float64:
		*b = val != 0
	case string:
		trimmed := strings.TrimSpace(strings.ToLower(val))
		*b = trimmed != "" && trimmed != "false" && trimmed != "0"
	default:
		*b = false
	}
	return nil
}

// looseInt64 accepts a JSON number (or numeric string) and becomes zero
// otherwise.
type looseInt64 int64

func (n *looseInt64) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseInt64(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var parsed float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &parsed); err == nil {
			*n = looseInt64(parsed)
			return nil
		}
	}
	*n = 0
	return nil
}

// fileRefRequest is the shape the upload-authorization step hands back to the
// client. A reference of the wrong shape, or without both filename and key,
// is treated as absent.
type fileRefRequest struct {
	Filename    looseString `json:"filename"`
	ContentType looseString `json:"contentType"`
	Size        looseInt64  `json:"size"`
	Key         looseString `json:"key"`
}

func (f *fileRefRequest) UnmarshalJSON(data []byte) error {
	type alias fileRefRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		*f = fileRefRequest{}
		return nil
	}
	*f = fileRefRequest(a)
	return nil
}

func (f *fileRefRequest) toInput() *services.FileRefInput {
	if f == nil || f.Filename == "" || f.Key == "" {
		return nil
	}
	return &services.FileRefInput{
		Filename:    string(f.Filename),
		ContentType: string(f.ContentType),
		Size:        int64(f.Size),
		Key:         string(f.Key),
	}
}

type submitRegistrationRequest struct {
	Email            looseString `json:"email"`
	PlayerName       looseString `json:"playerName"`
	Phone            looseString `json:"phone"`
	EmergencyContact looseString `json:"emergencyContact"`

	DOB           looseString `json:"dob"`
	Gender        looseString `json:"gender"`
	ParentName    looseString `json:"parentName"`
	Relationship  looseString `json:"relationship"`
	ParentContact looseString `json:"parentContact"`
	Occupation    looseString `json:"occupation"`
	Position      looseString `json:"position"`
	Purpose       looseString `json:"purpose"`
	YearsExp      looseString `json:"yearsExp"`
	PreviousClub  looseString `json:"previousClub"`
	Injuries      looseString `json:"injuries"`

	ConsentParticipate looseBool `json:"consentParticipate"`
	ConsentLiability   looseBool `json:"consentLiability"`
	ConsentMedia       looseBool `json:"consentMedia"`
	ConsentAIFF        looseBool `json:"consentAIFF"`

	Program       looseString `json:"program"`
	PaymentMethod looseString `json:"paymentMethod"`
	UpiID         looseString `json:"upiId"`

	Photo          *fileRefRequest `json:"photo"`
	IDDoc          *fileRefRequest `json:"idDoc"`
	BirthProof     *fileRefRequest `json:"birthProof"`
	PaymentReceipt *fileRefRequest `json:"paymentReceipt"`
}

func (r *submitRegistrationRequest) toInput() services.SubmitRegistrationInput {
	return services.SubmitRegistrationInput{
		Email:            string(r.Email),
		PlayerName:       string(r.PlayerName),
		Phone:            string(r.Phone),
		EmergencyContact: string(r.EmergencyContact),

		DOB:           string(r.DOB),
		Gender:        string(r.Gender),
		ParentName:    string(r.ParentName),
		Relationship:  string(r.Relationship),
		ParentContact: string(r.ParentContact),
		Occupation:    string(r.Occupation),
		Position:      string(r.Position),
		Purpose:       string(r.Purpose),
		YearsExp:      string(r.YearsExp),
		PreviousClub:  string(r.PreviousClub),
		Injuries:      string(r.Injuries),

		ConsentParticipate: bool(r.ConsentParticipate),
		ConsentLiability:   bool(r.ConsentLiability),
		ConsentMedia:       bool(r.ConsentMedia),
		ConsentAIFF:        bool(r.ConsentAIFF),

		Program:       string(r.Program),
		PaymentMethod: string(r.PaymentMethod),
		UpiID:         string(r.UpiID),

		Photo:          r.Photo.toInput(),
		IDDoc:          r.IDDoc.toInput(),
		BirthProof:     r.BirthProof.toInput(),
		PaymentReceipt: r.PaymentReceipt.toInput(),
	}
}
