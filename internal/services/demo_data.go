package services

import "petcare/internal/models"

func intPtr(v int) *int { return &v }

// DemoPets returns the two sample pets. Ids are left empty and assigned by
// the store on add.
func DemoPets() []models.Pet {
	return []models.Pet{
		{
			Name:         "Buddy",
			Species:      models.SpeciesDog,
			Breed:        "Golden Retriever",
			Age:          intPtr(3),
			Gender:       models.GenderMale,
			Color:        "Golden",
			Neutered:     true,
			Microchipped: true,
			MicrochipID:  "CHIP123456",
			ImageURI:     "https://images.unsplash.com/photo-1552053831-71594a27632d?auto=format&fit=crop&w=624&q=80",
			Notes:        "Loves to play fetch and swim",
			Allergies:    []string{"Chicken", "Wheat"},
			Vaccinations: []models.Vaccination{
				{Name: "Rabies", Date: models.MustParseDate("2023-05-15"), ExpiryDate: models.MustParseDate("2024-05-15")},
				{Name: "DHPP", Date: models.MustParseDate("2023-02-10"), ExpiryDate: models.MustParseDate("2024-02-10")},
			},
			MedicalRecords: []models.MedicalRecord{
				{Type: models.RecordCheckup, Date: models.MustParseDate("2023-06-20"), Description: "Annual checkup - all good", VetName: "Dr. Smith"},
			},
			FeedingSchedules: []models.FeedingSchedule{
				{Time: "08:00", Portion: "1 cup", FoodType: "Dry kibble"},
				{Time: "18:00", Portion: "1 cup", FoodType: "Dry kibble with wet food"},
			},
			Contacts: []models.Contact{
				{Name: "City Vet Clinic", Role: models.ContactVet, Phone: "555-123-4567", Email: "cityvet@example.com"},
			},
		},
		{
			Name:      "Whiskers",
			Species:   models.SpeciesCat,
			Breed:     "Siamese",
			Age:       intPtr(5),
			Gender:    models.GenderFemale,
			Color:     "Cream with brown points",
			Neutered:  true,
			ImageURI:  "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?auto=format&fit=crop&w=1143&q=80",
			Notes:     "Very vocal, loves to sit on laps",
			Allergies: []string{"Dairy"},
			Vaccinations: []models.Vaccination{
				{Name: "Rabies", Date: models.MustParseDate("2023-04-10"), ExpiryDate: models.MustParseDate("2024-04-10")},
				{Name: "FVRCP", Date: models.MustParseDate("2023-04-10"), ExpiryDate: models.MustParseDate("2024-04-10")},
			},
			FeedingSchedules: []models.FeedingSchedule{
				{Time: "07:00", Portion: "1/4 cup", FoodType: "Dry cat food"},
				{Time: "19:00", Portion: "1/4 cup", FoodType: "Wet cat food"},
			},
		},
	}
}

// DemoTasks returns the sample schedule for a dog and a cat, dated relative
// to today.
func DemoTasks(dogID, catID string, today models.Date) []models.Task {
	return []models.Task{
		{PetID: dogID, Title: "Morning Feed", Description: "One cup of dry food", Category: models.CategoryFeeding,
			Date: today, Time: "08:00", Frequency: models.FrequencyDaily, NotifyBefore: intPtr(15)},
		{PetID: dogID, Title: "Evening Feed", Description: "One cup of dry food with wet food topper", Category: models.CategoryFeeding,
			Date: today, Time: "18:00", Frequency: models.FrequencyDaily, NotifyBefore: intPtr(15)},
		{PetID: dogID, Title: "Morning Walk", Description: "30 minute walk around the neighborhood", Category: models.CategoryWalking,
			Date: today, Time: "07:30", Frequency: models.FrequencyDaily, Completed: true, NotifyBefore: intPtr(15)},
		{PetID: dogID, Title: "Evening Walk", Description: "20 minute walk at the park", Category: models.CategoryWalking,
			Date: today, Time: "19:00", Frequency: models.FrequencyDaily, NotifyBefore: intPtr(15)},
		{PetID: dogID, Title: "Vet Appointment", Description: "Annual checkup and vaccinations", Category: models.CategoryVet,
			Date: today.AddDays(3), Time: "14:30", Frequency: models.FrequencyOnce, NotifyBefore: intPtr(60)},
		{PetID: catID, Title: "Morning Feed", Description: "1/4 cup of dry food", Category: models.CategoryFeeding,
			Date: today, Time: "07:00", Frequency: models.FrequencyDaily, Completed: true, NotifyBefore: intPtr(15)},
		{PetID: catID, Title: "Evening Feed", Description: "1/4 cup of wet food", Category: models.CategoryFeeding,
			Date: today, Time: "19:00", Frequency: models.FrequencyDaily, NotifyBefore: intPtr(15)},
		{PetID: catID, Title: "Clean Litter Box", Description: "Scoop and replace if needed", Category: models.CategoryCleaning,
			Date: today, Frequency: models.FrequencyDaily},
		{PetID: catID, Title: "Grooming Session", Description: "Brush fur and check for mats", Category: models.CategoryGrooming,
			Date: today.AddDays(1), Frequency: models.FrequencyWeekly, RepeatDays: []int{2, 5}},
	}
}
