package requests

type SubmitFeedback struct {
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comments string `json:"comments" validate:"omitempty,max=1000"`
}
