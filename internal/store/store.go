// Package store persists console-side drafts: in-progress wizards and doctor
// records that have not been registered with the backend.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("draft not found")

type DraftStore interface {
	Put(ctx context.Context, key string, v any) error
	// Get decodes the draft into out and reports when it was saved.
	Get(ctx context.Context, key string, out any) (time.Time, error)
	Delete(ctx context.Context, key string) error
}

func WizardKey(sessionID string) string { return "wizard_" + sessionID }

func DoctorKey(id string) string { return "doctor_" + id }
