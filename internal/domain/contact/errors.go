package contact

import "errors"

var ErrSendFailed = errors.New("contact message could not be sent")

// fieldMessages are shown next to the contact form fields.
var fieldMessages = map[string]string{
	"name":    "Name must be at least 2 characters",
	"email":   "Please enter a valid email address",
	"phone":   "Please enter a valid phone number",
	"message": "Message must be at least 10 characters",
}

var tooLongMessages = map[string]string{
	"name":    "Name must be at most 100 characters",
	"message": "Message must be at most 1000 characters",
}
