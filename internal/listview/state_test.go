package listview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery_Defaults(t *testing.T) {
	s := FromQuery(url.Values{})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultLimit, s.Limit)

	s = FromQuery(url.Values{"page": {"-3"}, "limit": {"5000"}, "search": {"  ann "}})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, MaxLimit, s.Limit)
	assert.Equal(t, "ann", s.Search)
}

func TestWithPage_KeepsFilters(t *testing.T) {
	s := State{Search: "house", Status: "pending", Page: 1, Limit: 25}
	next := s.WithPage(3)

	assert.Equal(t, 3, next.Page)
	assert.Equal(t, "house", next.Search)
	assert.Equal(t, "pending", next.Status)
	assert.Equal(t, 25, next.Limit)
	assert.Equal(t, 1, s.WithPage(0).Page)
}

func TestFromQuery_WithoutPageStartsAtFirst(t *testing.T) {
	s := FromQuery(url.Values{"status": {"confirmed"}, "limit": {"25"}})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 25, s.Limit)
}

func TestValues_RoundTrip(t *testing.T) {
	s := State{Search: "ann", StartDate: "2024-06-01", Page: 2, Limit: DefaultLimit}
	assert.Equal(t, "page=2&search=ann&startDate=2024-06-01", s.Values().Encode())
	assert.Equal(t, s, FromQuery(s.Values()))
	assert.Equal(t, "search=ann&startDate=2024-06-01", s.WithPage(1).Values().Encode())
}
