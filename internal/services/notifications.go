package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medics-admin/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// Notifier texts patients about schedule changes made from the console.
// It is a no-op without a Textbelt key.
type Notifier struct {
	key      string
	endpoint string
	http     *http.Client
	log      zerolog.Logger
	wg       sync.WaitGroup
}

type NotifierOption func(*Notifier)

func WithEndpoint(url string) NotifierOption {
	return func(n *Notifier) { n.endpoint = url }
}

func NewNotifier(key string, log zerolog.Logger, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		key:      key,
		endpoint: textbeltURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Enabled() bool { return n != nil && n.key != "" }

// AppointmentRescheduled sends in the background so the reschedule response
// never waits on the SMS provider.
func (n *Notifier) AppointmentRescheduled(appt models.Appointment) {
	if !n.Enabled() {
		return
	}
	phone := appt.Patient.Phone
	if phone == "" {
		n.log.Info().Str("appointment_id", appt.ID).Msg("SMS not sent: patient has no phone number")
		return
	}
	start, ok := appt.Start()
	if !ok {
		return
	}
	body := fmt.Sprintf("Your appointment %s has been moved to %s.", appt.DisplayID(), start.Format("Jan 2 at 3:04 PM"))

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.send(ctx, phone, body); err != nil {
			n.log.Error().Err(err).Str("appointment_id", appt.ID).Msg("failed to send SMS")
			return
		}
		n.log.Info().Str("appointment_id", appt.ID).Msg("reschedule SMS sent")
	}()
}

// Wait blocks until in-flight messages finish.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

func (n *Notifier) send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     n.key,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}
