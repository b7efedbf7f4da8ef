package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/listview"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/session"
	"github.com/harentsoaR/medics-admin/internal/ui"
)

// ListView is the model behind every list screen.
type ListView struct {
	Layout     `json:"-"`
	Heading    string             `json:"-"`
	Action     string             `json:"-"`
	CreateLink string             `json:"-"`
	DateFilter bool               `json:"-"`
	State      listview.State     `json:"state"`
	Table      ui.Table           `json:"table"`
	Total      int                `json:"total"`
	Pages      int                `json:"pages"`
	Error      string             `json:"error,omitempty"`
	Statuses   []models.Reference `json:"statuses,omitempty"`
	PrevLink   string             `json:"prevLink,omitempty"`
	NextLink   string             `json:"nextLink,omitempty"`
}

// loadList fetches exactly the list state named by the request query through
// the session's loader.
func loadList[T any](c *gin.Context, h *Handler, reg *listview.Registry[T]) listview.Snapshot[T] {
	loader := reg.Get(session.FromContext(c).ID)
	snap := loader.Load(h.ctx(c), listview.FromQuery(c.Request.URL.Query()))
	if snap.Err != nil {
		h.logger(c).Error().Err(snap.Err).Str("path", c.Request.URL.Path).Msg("list fetch failed")
	}
	return snap
}

// newListView fills the paging fields from a snapshot. total and pages always
// come from the server count, whatever the in-page search kept.
func newListView[T any](snap listview.Snapshot[T], path string, table ui.Table) ListView {
	v := ListView{
		Action: path,
		State:  snap.State,
		Table:  table,
		Total:  snap.Total,
		Pages:  snap.Pages(),
		Error:  snap.Error,
	}
	if snap.State.Page > 1 {
		v.PrevLink = pageLink(path, snap.State.WithPage(snap.State.Page-1))
	}
	if snap.State.Page < v.Pages {
		v.NextLink = pageLink(path, snap.State.WithPage(snap.State.Page+1))
	}
	return v
}

func pageLink(path string, st listview.State) string {
	q := st.Values()
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// userSearchFields are the display fields the in-page search looks at.
func userSearchFields(u models.User) []string {
	return []string{u.FullName(), u.Email, u.Phone, u.Address.String(), u.Status, u.DisplayID()}
}

func withFrom(link, from string) string {
	if from == "" {
		return link
	}
	return link + "?from=" + url.QueryEscape(from)
}
