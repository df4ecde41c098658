package models

type ScanType string

const (
	ScanSkin  ScanType = "skin"
	ScanPoop  ScanType = "poop"
	ScanEye   ScanType = "eye"
	ScanOther ScanType = "other"
)

type ScanStatus string

const (
	StatusHealthy ScanStatus = "healthy"
	StatusWarning ScanStatus = "warning"
	StatusAlert   ScanStatus = "alert"
)

type ScanResult struct {
	Type            ScanType   `json:"type"`
	Status          ScanStatus `json:"status"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Recommendations []string   `json:"recommendations"`
}

var scanResults = map[ScanType]ScanResult{
	ScanSkin: {
		Status:      StatusWarning,
		Title:       "Possible Mild Irritation",
		Description: "The scan shows signs of mild skin irritation. This could be due to allergies, dry skin, or minor contact dermatitis. The affected area appears slightly red but doesn't show signs of severe infection.",
		Recommendations: []string{
			"Keep the area clean and dry",
			"Avoid scratching or licking",
			"Consider using a pet-safe moisturizer",
			"Monitor for changes over the next 48 hours",
			"If worsening, consult your veterinarian",
		},
	},
	ScanPoop: {
		Status:      StatusHealthy,
		Title:       "Healthy Stool",
		Description: "The stool appears to be of normal consistency and color. This indicates good digestive health. No visible signs of parasites, blood, or mucus were detected.",
		Recommendations: []string{
			"Continue current diet",
			"Ensure fresh water is always available",
			"Maintain regular feeding schedule",
			"Monitor for any changes in bathroom habits",
		},
	},
	ScanEye: {
		Status:      StatusAlert,
		Title:       "Possible Conjunctivitis",
		Description: "The scan shows signs of redness and discharge that may indicate conjunctivitis or an eye infection. This condition requires attention as it can cause discomfort and may worsen if untreated.",
		Recommendations: []string{
			"Consult your veterinarian within 24-48 hours",
			"Avoid touching or wiping the eye",
			"Keep your pet from rubbing the affected eye",
			"Monitor for increased discharge or squinting",
			"Do not use human eye drops or medications",
		},
	},
}

var defaultScanResult = ScanResult{
	Status:      StatusHealthy,
	Title:       "No Issues Detected",
	Description: "The scan appears normal with no visible health concerns.",
	Recommendations: []string{
		"Continue regular pet care routine",
		"Monitor for any changes",
		"Schedule regular vet check-ups",
	},
}

// NormalizeScanType maps anything outside the known scan types to ScanOther.
func NormalizeScanType(t ScanType) ScanType {
	switch t {
	case ScanSkin, ScanPoop, ScanEye, ScanOther:
		return t
	}
	return ScanOther
}

// LookupScan returns the canned analysis for t. Unknown types get the
// "no issues" result.
func LookupScan(t ScanType) ScanResult {
	r, ok := scanResults[t]
	if !ok {
		r = defaultScanResult
	}
	r.Type = t
	r.Recommendations = cloneSlice(r.Recommendations)
	return r
}
