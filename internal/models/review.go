package models

import "time"

type Review struct {
	ID        string    `json:"_id"`
	DoctorID  string    `json:"doctorId"`
	Patient   UserRef   `json:"patientId"`
	Rating    float64   `json:"rating"` // 0-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
