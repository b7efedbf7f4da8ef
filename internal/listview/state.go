package listview

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// State is everything a list screen sends to the backend. It is read from the
// request query as is: the filter form submits without a page, so a filter
// change lands on page 1, while pager links carry the filters and the page.
type State struct {
	Search    string `json:"search,omitempty"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	PatientID string `json:"patientId,omitempty"`
	DoctorID  string `json:"doctorId,omitempty"`
	VisitType string `json:"visitType,omitempty"`

	RecommendedDoctorID string `json:"recommendedDoctorId,omitempty"`
	RespondedDoctorID   string `json:"respondedDoctorId,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromQuery reads a list state from the request's query string.
func FromQuery(q url.Values) State {
	s := State{
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    strings.TrimSpace(q.Get("status")),
		StartDate: strings.TrimSpace(q.Get("startDate")),
		EndDate:   strings.TrimSpace(q.Get("endDate")),
		PatientID: strings.TrimSpace(q.Get("patientId")),
		DoctorID:  strings.TrimSpace(q.Get("doctorId")),
		VisitType: strings.TrimSpace(q.Get("visitType")),

		RecommendedDoctorID: strings.TrimSpace(q.Get("recommendedDoctorId")),
		RespondedDoctorID:   strings.TrimSpace(q.Get("respondedDoctorId")),
	}
	s.Page, _ = strconv.Atoi(q.Get("page"))
	s.Limit, _ = strconv.Atoi(q.Get("limit"))
	return s.normalized()
}

func (s State) normalized() State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.Limit > MaxLimit {
		s.Limit = MaxLimit
	}
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s.normalized()
}

// Values encodes the state back into a query string, skipping unset keys.
func (s State) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("search", s.Search)
	set("status", s.Status)
	set("startDate", s.StartDate)
	set("endDate", s.EndDate)
	set("patientId", s.PatientID)
	set("doctorId", s.DoctorID)
	set("visitType", s.VisitType)
	set("recommendedDoctorId", s.RecommendedDoctorID)
	set("respondedDoctorId", s.RespondedDoctorID)
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit != DefaultLimit && s.Limit > 0 {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	return v
}
