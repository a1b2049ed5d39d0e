package models

// Principal is the caller resolved from a verified identity token.
type Principal struct {
	SubjectID string `json:"subject_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}
