package controllers

import (
	"net/http"
	"petcare/internal/models"
)

// userResponse adds the derived entitlement next to the stored profile;
// clients must use PremiumActive, never the raw isPremium flag.
type userResponse struct {
	models.User
	PremiumActive bool `json:"premiumActive"`
}

func (ac *ApiController) currentUser() (userResponse, bool) {
	user, ok := ac.users.Current()
	if !ok {
		return userResponse{}, false
	}
	return userResponse{User: user, PremiumActive: ac.users.IsPremiumActive()}, true
}

func (ac *ApiController) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.currentUser()
	if !ok {
		ac.notFound(w, "user", "profile")
		return
	}
	ac.writeJSON(w, http.StatusOK, user)
}

func (ac *ApiController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.users.Current(); !ok {
		ac.notFound(w, "user", "profile")
		return
	}
	var patch models.UserPatch
	if !ac.decode(w, r, &patch) {
		return
	}

	ack, err := ac.users.Update(patch)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	user, _ := ac.currentUser()
	ac.respondMutation(w, r, http.StatusOK, ack, user)
}

// UpgradeUser grants premium for the plan named by ?plan=monthly|yearly.
func (ac *ApiController) UpgradeUser(w http.ResponseWriter, r *http.Request) {
	plan, err := models.ParsePlan(r.URL.Query().Get("plan"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	if _, ok := ac.users.Current(); !ok {
		ac.notFound(w, "user", "profile")
		return
	}

	ack, err := ac.users.UpgradePlan(plan)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	user, _ := ac.currentUser()
	ac.respondMutation(w, r, http.StatusOK, ack, user)
}
