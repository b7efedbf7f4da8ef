package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

type User struct {
	ID            string      `json:"_id"`
	ReadableID    string      `json:"readableId,omitempty"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Name          string      `json:"name,omitempty"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Role          string      `json:"role"` // "doctor", "patient", "admin"
	Status        string      `json:"status,omitempty"`
	EmailVerified bool        `json:"emailVerified"`
	PhoneVerified bool        `json:"phoneVerified"`
	Address       Address     `json:"address"`
	Country       string      `json:"country,omitempty"`
	City          string      `json:"city,omitempty"`
	FCMToken      string      `json:"fcmToken,omitempty"`
	DocProfile    *DocProfile `json:"docProfile,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type DocProfile struct {
	Bio               string            `json:"bio"`
	IsProfileVerified bool              `json:"isProfileVerified"`
	EmergencyContact  EmergencyContact  `json:"emergencyContact"`
	RegulatoryDetails RegulatoryDetails `json:"regulatoryDetails"`
}

type EmergencyContact struct {
	FullName string `json:"fullName"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type RegulatoryDetails struct {
	AuthorityName           string `json:"authorityName"`
	RegistrationNumber      string `json:"registrationNumber"`
	OnSpecialistRegister    bool   `json:"onSpecialistRegister"`
	AllowStatusVerification bool   `json:"allowStatusVerification"`
}

// UnmarshalJSON accepts both "_id" and "id"; the login endpoint uses the latter.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}

// FullName falls back to the single name field, then to the email.
func (u User) FullName() string {
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// DisplayID prefers the human-friendly readable id.
func (u User) DisplayID() string {
	if u.ReadableID != "" {
		return u.ReadableID
	}
	return u.ID
}

func (u User) IsProfileVerified() bool {
	return u.DocProfile != nil && u.DocProfile.IsProfileVerified
}

// UserRef is a user reference that the backend either populates with a partial
// user object or leaves as a bare id.
type UserRef struct {
	User
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	r.User = User{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.User.ID)
	}
	return json.Unmarshal(data, &r.User)
}

func (r UserRef) IsZero() bool {
	return r.ID == "" && r.FullName() == ""
}
