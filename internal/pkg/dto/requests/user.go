package requests

type CreateUser struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"omitempty,phone_number"`
	Role        string `json:"role" validate:"required,role"`
}

type UpdateUser struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,phone_number"`
	Role        *string `json:"role" validate:"omitempty,role"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,password"`
}

type UpdateProfile struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,phone_number"`
}

type SetAvailability struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}
