package controllers

import (
	"net/http"
	"petcare/internal/models"
)

type petListResponse struct {
	Pets          []models.Pet `json:"pets"`
	SelectedPetID *string      `json:"selectedPetId"`
}

func (ac *ApiController) ListPets(w http.ResponseWriter, r *http.Request) {
	resp := petListResponse{Pets: ac.pets.List()}
	if selected, ok := ac.pets.Selected(); ok {
		resp.SelectedPetID = &selected.ID
	}
	ac.writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) AddPet(w http.ResponseWriter, r *http.Request) {
	var pet models.Pet
	if !ac.decode(w, r, &pet) {
		return
	}
	if pet.ID == "" {
		pet.ID = ac.ids.NewID()
	}

	ack, err := ac.pets.Add(pet)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	stored, _ := ac.pets.Get(pet.ID)
	ac.respondMutation(w, r, http.StatusCreated, ack, stored)
}

func (ac *ApiController) GetPet(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	pet, ok := ac.pets.Get(id)
	if !ok {
		ac.notFound(w, "pet", id)
		return
	}
	ac.writeJSON(w, http.StatusOK, pet)
}

func (ac *ApiController) UpdatePet(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	if _, ok := ac.pets.Get(id); !ok {
		ac.notFound(w, "pet", id)
		return
	}
	var patch models.PetPatch
	if !ac.decode(w, r, &patch) {
		return
	}

	ack, err := ac.pets.Update(id, patch)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	updated, _ := ac.pets.Get(id)
	ac.respondMutation(w, r, http.StatusOK, ack, updated)
}

// DeletePet is idempotent: removing an unknown pet succeeds.
func (ac *ApiController) DeletePet(w http.ResponseWriter, r *http.Request) {
	ack, err := ac.pets.Remove(queryID(r))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.respondMutation(w, r, http.StatusOK, ack, nil)
}

// SelectPet marks a pet as selected; an empty id clears the selection.
func (ac *ApiController) SelectPet(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	if id == "" {
		ack, err := ac.pets.ClearSelection()
		if err != nil {
			ac.writeError(w, r, err)
			return
		}
		ac.respondMutation(w, r, http.StatusOK, ack, nil)
		return
	}

	pet, ok := ac.pets.Get(id)
	if !ok {
		ac.notFound(w, "pet", id)
		return
	}
	ack, err := ac.pets.Select(id)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.respondMutation(w, r, http.StatusOK, ack, pet)
}
