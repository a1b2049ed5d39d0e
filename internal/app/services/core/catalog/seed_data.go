package catalog

import (
	"homevisit-service/internal/app/models"
)

type offerSeed struct {
	models.Offer
	ServiceExternalIDs []string
}

var seedServices = []models.Service{
	{
		ExternalID:      "svc-general-checkup",
		Name:            "General Health Checkup",
		Description:     "Vitals, basic examination and a consultation at home.",
		Category:        "consultation",
		BasePrice:       1500,
		Currency:        "INR",
		DurationMinutes: 45,
		IsActive:        true,
	},
	{
		ExternalID:      "svc-elderly-care",
		Name:            "Elderly Care Visit",
		Description:     "Routine visit for senior patients including medication review.",
		Category:        "consultation",
		BasePrice:       1800,
		Currency:        "INR",
		DurationMinutes: 60,
		IsActive:        true,
	},
	{
		ExternalID:      "svc-wound-dressing",
		Name:            "Wound Dressing",
		Description:     "Cleaning and dressing of post-operative or minor wounds.",
		Category:        "nursing",
		BasePrice:       900,
		Currency:        "INR",
		DurationMinutes: 30,
		IsActive:        true,
	},
	{
		ExternalID:      "svc-physiotherapy",
		Name:            "Physiotherapy Session",
		Description:     "Guided physiotherapy at home.",
		Category:        "therapy",
		BasePrice:       1200,
		Currency:        "INR",
		DurationMinutes: 60,
		IsActive:        true,
	},
	{
		ExternalID:      "svc-sample-collection",
		Name:            "Blood Sample Collection",
		Description:     "Home collection of blood samples for lab tests.",
		Category:        "diagnostics",
		BasePrice:       500,
		Currency:        "INR",
		DurationMinutes: 20,
		IsActive:        true,
	},
}

var seedOffers = []offerSeed{
	{
		Offer: models.Offer{
			ExternalID:      "offer-first-visit",
			Title:           "First Visit Discount",
			Description:     "10% off on your first home consultation.",
			DiscountPercent: 10,
			IsActive:        true,
		},
		ServiceExternalIDs: []string{"svc-general-checkup", "svc-elderly-care"},
	},
	{
		Offer: models.Offer{
			ExternalID:      "offer-senior-care",
			Title:           "Senior Care Package",
			Description:     "15% off elderly care and physiotherapy visits.",
			DiscountPercent: 15,
			IsActive:        true,
		},
		ServiceExternalIDs: []string{"svc-elderly-care", "svc-physiotherapy"},
	},
}
