package models

import "time"

// Application represents a candidate's application to an offer
type Application struct {
	ID          int64             `json:"id" db:"id"`
	OfferID     int64             `json:"offerId" db:"offer_id"`
	CandidateID int64             `json:"candidateId" db:"candidate_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	Message     *string           `json:"message,omitempty" db:"message"` // Optional cover message
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
	// Relational fields
	Offer     *Offer            `json:"offer,omitempty"`
	Candidate *CandidateProfile `json:"candidate,omitempty"`
}
