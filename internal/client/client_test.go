package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/medics-admin/internal/models"
)

// newTestClient points a Client at a handler standing in for the backend.
func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api")
}

func authed() context.Context {
	return WithToken(context.Background(), "tok-123")
}

func TestListAppointments_StripsUnsetFilters(t *testing.T) {
	var gotQuery string
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/appointments", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[{"_id":"a1","status":"pending","patientId":{"_id":"p1","firstName":"Ann"}}],"total":31,"page":2,"limit":10}`))
	})

	page, err := c.ListAppointments(authed(), AppointmentListParams{Page: 2, Limit: 10, Status: "pending"})
	require.NoError(t, err)

	assert.Equal(t, "limit=10&page=2&status=pending", gotQuery)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, 31, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Ann", page.Data[0].Patient.FirstName)
}

func TestList_EmptyDataIsNeverNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"total":0,"page":1,"limit":10}`))
	})

	page, err := c.ListPatients(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestListPatients_OmitsHeaderWithoutToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "patient", r.URL.Query().Get("role"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[],"total":0,"page":1,"limit":10}`))
	})

	_, err := c.ListPatients(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDoctorCalls_RequireToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called, got %s", r.URL.Path)
	})
	ctx := context.Background()

	_, err := c.ListDoctors(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.GetDoctor(ctx, "d1")
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.DoctorReviews(ctx, "d1")
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.UpdateUser(ctx, "d1", UserUpdate{})
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestGetUser_NormalizesEnvelope(t *testing.T) {
	responses := map[string]string{
		"/api/admin/users/wrapped": `{"success":true,"data":{"_id":"wrapped","firstName":"Meredith","address":"1 Main St"}}`,
		"/api/admin/users/bare":    `{"_id":"bare","firstName":"Derek","address":{"city":"Seattle"}}`,
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(responses[r.URL.Path]))
	})

	wrapped, err := c.GetUser(authed(), "wrapped")
	require.NoError(t, err)
	assert.Equal(t, "wrapped", wrapped.ID)
	assert.Equal(t, "1 Main St", wrapped.Address.String())

	bare, err := c.GetUser(authed(), "bare")
	require.NoError(t, err)
	assert.Equal(t, "bare", bare.ID)
	assert.Equal(t, "Seattle", bare.Address.String())
}

func TestAPIError_PropagatesStatusAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Appointment not found"}`))
	})

	_, err := c.GetAppointment(authed(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Appointment not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestAPIError_NoRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.References(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Bad Gateway", err.(*APIError).Message)
}

func TestUpdateAppointment_SendsScheduledAt(t *testing.T) {
	when := time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/appointments/a1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"scheduledAt":"2024-07-01T14:30:00Z"}`, string(raw))
		w.Write([]byte(`{"success":true,"data":{"_id":"a1","scheduledAt":"2024-07-01T14:30:00Z","status":"confirmed"}}`))
	})

	appt, err := c.UpdateAppointment(authed(), "a1", AppointmentUpdate{ScheduledAt: &when})
	require.NoError(t, err)
	require.NotNil(t, appt.ScheduledAt)
	assert.True(t, appt.ScheduledAt.Equal(when))
}

func TestUpdateUser_SendsFullDocProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var got UserUpdate
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if !assert.NotNil(t, got.DocProfile) {
			return
		}
		assert.True(t, got.DocProfile.IsProfileVerified)
		assert.Equal(t, "GMC", got.DocProfile.RegulatoryDetails.AuthorityName)
		w.Write([]byte(`{"_id":"d1","docProfile":{"isProfileVerified":true}}`))
	})

	profile := &models.DocProfile{IsProfileVerified: true, RegulatoryDetails: models.RegulatoryDetails{AuthorityName: "GMC"}}
	u, err := c.UpdateUser(authed(), "d1", UserUpdate{DocProfile: profile})
	require.NoError(t, err)
	assert.True(t, u.IsProfileVerified())
}

func TestReferences_Unwraps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"APPOINTMENT_STATUSES":{"REQUESTED":{"id":1,"code":"requested","name":"Requested"}}}}`))
	})

	refs, err := c.References(context.Background())
	require.NoError(t, err)
	require.Len(t, refs.AppointmentStatusList(), 1)
	assert.Equal(t, "Requested", refs.AppointmentStatusList()[0].Name)
}

func TestDoctorReviews_BareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"r1","doctorId":"d1","patientId":{"_id":"p1","firstName":"Ann","lastName":"Lee"},"rating":4,"comment":"kind"}]`))
	})

	reviews, err := c.DoctorReviews(authed(), "d1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ann Lee", reviews[0].Patient.FullName())
}

func TestEmailLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"jwt-abc","user":{"id":"u1","email":"admin@x.io","role":"admin"}}`))
	})

	resp, err := c.EmailLogin(context.Background(), Credentials{Email: "admin@x.io", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)

	_, err = c.EmailLogin(context.Background(), Credentials{Email: "admin@x.io", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestDashboardStats_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "endDate=2024-06-14&startDate=2024-06-14&timeFilter=yesterday", r.URL.RawQuery)
		w.Write([]byte(`{"success":true,"data":{"totalAppointments":4,"netRevenue":120.5,"appointmentTrends":[{"_id":"2024-06-14","count":4}]}}`))
	})

	stats, err := c.DashboardStats(authed(), StatsParams{StartDate: "2024-06-14", EndDate: "2024-06-14", TimeFilter: "yesterday"})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalAppointments)
	require.Len(t, stats.AppointmentTrends, 1)
	assert.Equal(t, "2024-06-14", stats.AppointmentTrends[0].Label)
}

func TestCreateAdmin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"_id":"adm1","firstName":"Root","email":"root@x.io","role":"admin"}}`))
	})

	u, err := c.CreateAdmin(context.Background(), CreateAdminRequest{FirstName: "Root", Email: "root@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "adm1", u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
