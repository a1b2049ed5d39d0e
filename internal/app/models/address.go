package models

type Address struct {
	ID        string `json:"id" bson:"_id"`
	OwnerID   string `json:"owner_id" bson:"ownerId"`
	Line1     string `json:"line1" bson:"line1"`
	Line2     string `json:"line2,omitempty" bson:"line2,omitempty"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Zip       string `json:"zip" bson:"zip"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	IsDefault bool   `json:"is_default" bson:"isDefault"`
	TimeModel `bson:",inline"`
}
