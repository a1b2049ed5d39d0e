package models

// User is the profile record mirroring an identity.
type User struct {
	ID          string `json:"id" bson:"_id"`
	Role        string `json:"role" bson:"role"`
	Email       string `json:"email" bson:"email"`
	DisplayName string `json:"display_name" bson:"displayName"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	Status      string `json:"status" bson:"status"`
	IsAvailable bool   `json:"is_available" bson:"isAvailable"`
	TimeModel   `bson:",inline"`
}

type UserFilter struct {
	Role   string
	Status string
}
