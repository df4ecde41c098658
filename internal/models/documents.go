package models

// PetDocument is the persisted state of the pet collection.
type PetDocument struct {
	Pets          []Pet   `json:"pets"`
	SelectedPetID *string `json:"selectedPetId"`
}

type TaskDocument struct {
	Tasks []Task `json:"tasks"`
}

type UserDocument struct {
	User *User `json:"user"`
}

const (
	PetStorageKey  = "pet-storage"
	TaskStorageKey = "task-storage"
	UserStorageKey = "user-storage"
)
