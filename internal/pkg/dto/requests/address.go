package requests

type CreateAddress struct {
	Line1     string `json:"line1" validate:"required,max=200"`
	Line2     string `json:"line2" validate:"omitempty,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Zip       string `json:"zip" validate:"required,max=20"`
	Label     string `json:"label" validate:"omitempty,max=50"`
	IsDefault bool   `json:"is_default"`
}

type UpdateAddress struct {
	Line1     *string `json:"line1" validate:"omitempty,min=1,max=200"`
	Line2     *string `json:"line2" validate:"omitempty,max=200"`
	City      *string `json:"city" validate:"omitempty,min=1,max=100"`
	State     *string `json:"state" validate:"omitempty,min=1,max=100"`
	Zip       *string `json:"zip" validate:"omitempty,min=1,max=20"`
	Label     *string `json:"label" validate:"omitempty,max=50"`
	IsDefault *bool   `json:"is_default"`
}
