package models

type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesRabbit  Species = "rabbit"
	SpeciesFish    Species = "fish"
	SpeciesReptile Species = "reptile"
	SpeciesOther   Species = "other"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

type WeightUnit string

const (
	WeightKg WeightUnit = "kg"
	WeightLb WeightUnit = "lb"
)

type MedicalRecordType string

const (
	RecordCheckup   MedicalRecordType = "checkup"
	RecordTreatment MedicalRecordType = "treatment"
	RecordSurgery   MedicalRecordType = "surgery"
	RecordOther     MedicalRecordType = "other"
)

type ContactRole string

const (
	ContactVet       ContactRole = "vet"
	ContactEmergency ContactRole = "emergency"
	ContactSitter    ContactRole = "sitter"
	ContactOther     ContactRole = "other"
)

type Vaccination struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Date       Date   `json:"date"`
	ExpiryDate Date   `json:"expiryDate"`
	Notes      string `json:"notes,omitempty"`
}

type MedicalRecord struct {
	ID          string            `json:"id"`
	Type        MedicalRecordType `json:"type"`
	Date        Date              `json:"date"`
	Description string            `json:"description"`
	VetName     string            `json:"vetName,omitempty"`
	Documents   []string          `json:"documents,omitempty"`
}

type FeedingSchedule struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Portion  string `json:"portion"`
	FoodType string `json:"foodType"`
	Notes    string `json:"notes,omitempty"`
}

type Contact struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Role    ContactRole `json:"role"`
	Phone   string      `json:"phone"`
	Email   string      `json:"email,omitempty"`
	Address string      `json:"address,omitempty"`
}

type Pet struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Species          Species           `json:"species"`
	Breed            string            `json:"breed,omitempty"`
	Age              *int              `json:"age,omitempty"`
	Weight           *float64          `json:"weight,omitempty"`
	WeightUnit       WeightUnit        `json:"weightUnit,omitempty"`
	Birthdate        *Date             `json:"birthdate,omitempty"`
	Color            string            `json:"color,omitempty"`
	Gender           Gender            `json:"gender,omitempty"`
	Microchipped     bool              `json:"microchipped,omitempty"`
	MicrochipID      string            `json:"microchipId,omitempty"`
	Neutered         bool              `json:"neutered,omitempty"`
	ImageURI         string            `json:"imageUri,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Allergies        []string          `json:"allergies,omitempty"`
	Medications      []string          `json:"medications,omitempty"`
	Vaccinations     []Vaccination     `json:"vaccinations,omitempty"`
	MedicalRecords   []MedicalRecord   `json:"medicalRecords,omitempty"`
	FeedingSchedules []FeedingSchedule `json:"feedingSchedules,omitempty"`
	Contacts         []Contact         `json:"contacts,omitempty"`
}

// Clone returns a deep copy so callers never share slices with a store.
func (p Pet) Clone() Pet {
	c := p
	if p.Age != nil {
		age := *p.Age
		c.Age = &age
	}
	if p.Weight != nil {
		w := *p.Weight
		c.Weight = &w
	}
	if p.Birthdate != nil {
		b := *p.Birthdate
		c.Birthdate = &b
	}
	c.Allergies = cloneSlice(p.Allergies)
	c.Medications = cloneSlice(p.Medications)
	c.Vaccinations = cloneSlice(p.Vaccinations)
	c.FeedingSchedules = cloneSlice(p.FeedingSchedules)
	c.Contacts = cloneSlice(p.Contacts)
	if p.MedicalRecords != nil {
		c.MedicalRecords = make([]MedicalRecord, len(p.MedicalRecords))
		for i, r := range p.MedicalRecords {
			r.Documents = cloneSlice(r.Documents)
			c.MedicalRecords[i] = r
		}
	}
	return c
}

// PetPatch carries the fields of a partial update. Nil fields are left as is.
type PetPatch struct {
	Name             *string            `json:"name,omitempty"`
	Species          *Species           `json:"species,omitempty"`
	Breed            *string            `json:"breed,omitempty"`
	Age              *int               `json:"age,omitempty"`
	Weight           *float64           `json:"weight,omitempty"`
	WeightUnit       *WeightUnit        `json:"weightUnit,omitempty"`
	Birthdate        *Date              `json:"birthdate,omitempty"`
	Color            *string            `json:"color,omitempty"`
	Gender           *Gender            `json:"gender,omitempty"`
	Microchipped     *bool              `json:"microchipped,omitempty"`
	MicrochipID      *string            `json:"microchipId,omitempty"`
	Neutered         *bool              `json:"neutered,omitempty"`
	ImageURI         *string            `json:"imageUri,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
	Allergies        *[]string          `json:"allergies,omitempty"`
	Medications      *[]string          `json:"medications,omitempty"`
	Vaccinations     *[]Vaccination     `json:"vaccinations,omitempty"`
	MedicalRecords   *[]MedicalRecord   `json:"medicalRecords,omitempty"`
	FeedingSchedules *[]FeedingSchedule `json:"feedingSchedules,omitempty"`
	Contacts         *[]Contact         `json:"contacts,omitempty"`
}

// Apply merges the patch into p and returns the result; p is not modified.
func (pp PetPatch) Apply(p Pet) Pet {
	out := p.Clone()
	setIf(&out.Name, pp.Name)
	setIf(&out.Species, pp.Species)
	setIf(&out.Breed, pp.Breed)
	if pp.Age != nil {
		age := *pp.Age
		out.Age = &age
	}
	if pp.Weight != nil {
		w := *pp.Weight
		out.Weight = &w
	}
	setIf(&out.WeightUnit, pp.WeightUnit)
	if pp.Birthdate != nil {
		b := *pp.Birthdate
		out.Birthdate = &b
	}
	setIf(&out.Color, pp.Color)
	setIf(&out.Gender, pp.Gender)
	setIf(&out.Microchipped, pp.Microchipped)
	setIf(&out.MicrochipID, pp.MicrochipID)
	setIf(&out.Neutered, pp.Neutered)
	setIf(&out.ImageURI, pp.ImageURI)
	setIf(&out.Notes, pp.Notes)
	if pp.Allergies != nil {
		out.Allergies = cloneSlice(*pp.Allergies)
	}
	if pp.Medications != nil {
		out.Medications = cloneSlice(*pp.Medications)
	}
	if pp.Vaccinations != nil {
		out.Vaccinations = cloneSlice(*pp.Vaccinations)
	}
	if pp.MedicalRecords != nil {
		out.MedicalRecords = Pet{MedicalRecords: *pp.MedicalRecords}.Clone().MedicalRecords
	}
	if pp.FeedingSchedules != nil {
		out.FeedingSchedules = cloneSlice(*pp.FeedingSchedules)
	}
	if pp.Contacts != nil {
		out.Contacts = cloneSlice(*pp.Contacts)
	}
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
