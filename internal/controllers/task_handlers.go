package controllers

import (
	"net/http"
	"petcare/internal/models"
)

// ListTasks returns tasks in insertion order, optionally narrowed to one
// pet (?pet=) and one day (?date=YYYY-MM-DD|today).
func (ac *ApiController) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := parseDateParam(q.Get("date"), ac.tasks.Today())
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	ac.serveFromCacheOrCompute(w, ac.viewCacheKey(r), func() any {
		var tasks []models.Task
		if date.IsZero() {
			tasks = ac.tasks.List()
		} else {
			tasks = ac.tasks.ForDate(date)
		}
		if petID := q.Get("pet"); petID != "" {
			filtered := tasks[:0]
			for _, t := range tasks {
				if t.PetID == petID {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if tasks == nil {
			tasks = []models.Task{}
		}
		return tasks
	})
}

func (ac *ApiController) AddTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !ac.decode(w, r, &task) {
		return
	}
	if task.ID == "" {
		task.ID = ac.ids.NewID()
	}

	ack, err := ac.tasks.Add(task)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	stored, _ := ac.tasks.Get(task.ID)
	ac.respondMutation(w, r, http.StatusCreated, ack, stored)
}

func (ac *ApiController) GetTask(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	task, ok := ac.tasks.Get(id)
	if !ok {
		ac.notFound(w, "task", id)
		return
	}
	ac.writeJSON(w, http.StatusOK, task)
}

func (ac *ApiController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	if _, ok := ac.tasks.Get(id); !ok {
		ac.notFound(w, "task", id)
		return
	}
	var patch models.TaskPatch
	if !ac.decode(w, r, &patch) {
		return
	}

	ack, err := ac.tasks.Update(id, patch)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	updated, _ := ac.tasks.Get(id)
	ac.respondMutation(w, r, http.StatusOK, ack, updated)
}

func (ac *ApiController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ack, err := ac.tasks.Remove(queryID(r))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.respondMutation(w, r, http.StatusOK, ack, nil)
}

func (ac *ApiController) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := queryID(r)
	if _, ok := ac.tasks.Get(id); !ok {
		ac.notFound(w, "task", id)
		return
	}
	ack, err := ac.tasks.ToggleCompletion(id)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	toggled, _ := ac.tasks.Get(id)
	ac.respondMutation(w, r, http.StatusOK, ack, toggled)
}
