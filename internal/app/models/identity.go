package models

// Identity is the credential record owned by the identity provider.
type Identity struct {
	ID           string `json:"id" bson:"_id"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`
	Disabled     bool   `json:"disabled" bson:"disabled"`
	TokenVersion int    `json:"token_version" bson:"tokenVersion"`
	TimeModel    `bson:",inline"`
}

// IdentityClaims is what a verified assertion carries.
type IdentityClaims struct {
	SubjectID    string
	Role         string
	Email        string
	TokenVersion int
}
