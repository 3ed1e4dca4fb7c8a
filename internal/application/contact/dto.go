package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/saanjh/storefront/internal/domain/contact"
)

// SubmitRequest is the contact form as posted by the browser or an API client
type SubmitRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email,max=254"`
	Subject string `json:"subject" form:"subject" binding:"required,max=200"`
	Message string `json:"message" form:"message" binding:"required,max=5000"`
}

// SubmitResponse acknowledges an accepted message
type SubmitResponse struct {
	ID         uuid.UUID `json:"id"`
	Notice     string    `json:"notice"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// FormState is what the contact page renders: the values to refill and the
// outcome of the last submission
type FormState struct {
	Values  SubmitRequest     `json:"values"`
	Errors  map[string]string `json:"errors,omitempty"`
	Notice  string            `json:"notice,omitempty"`
	Success bool              `json:"success"`
}

// Accepted is the form state after a successful submission. The form is reset.
func Accepted() FormState {
	return FormState{Notice: contact.ThankYouNotice, Success: true}
}
