package contact

// SubmitContactRequest is the public contact form.
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Service string `json:"service"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

type SubmitContactResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
