package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

const dateLayout = "2006-01-02"

type dashboardView struct {
	Stats     models.DashboardStats
	Shops     []models.Shop
	ShopID    string
	StartDate string
	EndDate   string
	AllTime   bool
	Range     string
}

// trailingWindow returns the date window covering exactly the trailing N days
// ending today.
func trailingWindow(now time.Time, days int) (start, end string) {
	return now.AddDate(0, 0, -days).Format(dateLayout), now.Format(dateLayout)
}

// statsFilter derives the stats request from the screen's filter state. The
// quick ranges win over explicit dates; "all" clears both bounds so the fetch
// omits date parameters entirely; no filter at all defaults to the trailing
// 30 days.
func statsFilter(q url.Values, now time.Time) client.StatsFilter {
	filter := client.StatsFilter{ShopID: q.Get("shop_id")}

	switch r := q.Get("range"); r {
	case "all":
		return filter
	case "7", "30", "90":
		days, _ := strconv.Atoi(r)
		filter.StartDate, filter.EndDate = trailingWindow(now, days)
		return filter
	}

	if q.Has("start_date") || q.Has("end_date") {
		filter.StartDate = q.Get("start_date")
		filter.EndDate = q.Get("end_date")
		return filter
	}

	filter.StartDate, filter.EndDate = trailingWindow(now, 30)
	return filter
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) error {
	filter := statsFilter(r.URL.Query(), time.Now())

	// The shop dropdown is a secondary read; its failure must not take the
	// dashboard down.
	shops, err := h.fetchShops(r)
	if err != nil {
		return err
	}

	var stats models.DashboardStats
	fetched, err := h.api.DashboardStats(r.Context(), filter)
	if err != nil {
		if sessionLost(err) {
			return err
		}
		// Empty aggregates render as explicit "no data" placeholders.
		h.log.Warn("failed to fetch dashboard stats", "error", err)
	} else {
		stats = fetched
	}

	return h.render(w, "dashboard.html", pageData{
		Title:  "Dashboard Summary",
		Active: "dashboard",
		Data: dashboardView{
			Stats:     stats,
			Shops:     shops,
			ShopID:    filter.ShopID,
			StartDate: filter.StartDate,
			EndDate:   filter.EndDate,
			AllTime:   filter.StartDate == "" && filter.EndDate == "",
			Range:     r.URL.Query().Get("range"),
		},
	})
}
