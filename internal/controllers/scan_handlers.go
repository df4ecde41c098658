package controllers

import (
	"net/http"
	"petcare/internal/models"
	"petcare/internal/services"
)

type scanResponse struct {
	Result         models.ScanResult `json:"result"`
	ScansRemaining int               `json:"scansRemaining"`
	Premium        bool              `json:"premium"`
}

// Scan runs a simulated health scan. The request blocks for the configured
// analysis delay; a client that disconnects first is not charged.
func (ac *ApiController) Scan(w http.ResponseWriter, r *http.Request) {
	scanType := models.NormalizeScanType(models.ScanType(r.URL.Query().Get("type")))

	result, err := ac.scans.Scan(r.Context(), scanType)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	resp := scanResponse{Result: result, Premium: ac.users.IsPremiumActive()}
	if user, ok := ac.users.Current(); ok {
		resp.ScansRemaining = user.AIScansRemaining
	}
	ac.writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.viewCacheKey(r), func() any {
		return ac.views.Dashboard()
	})
}

func (ac *ApiController) PetUpcoming(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	if _, ok := ac.pets.Get(id); !ok {
		ac.notFound(w, "pet", id)
		return
	}
	ac.serveFromCacheOrCompute(w, ac.viewCacheKey(r), func() any {
		upcoming := ac.views.UpcomingForPet(id)
		if upcoming == nil {
			upcoming = []services.TaskView{}
		}
		return upcoming
	})
}

// Schedule returns one day of the schedule window; ?date defaults to today.
func (ac *ApiController) Schedule(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r.URL.Query().Get("date"), ac.tasks.Today())
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.serveFromCacheOrCompute(w, ac.viewCacheKey(r), func() any {
		return ac.views.Schedule(date)
	})
}
