package models

import "time"

// Offer represents an internship offer in the database
type Offer struct {
	ID           int64          `json:"id" db:"id"`
	CompanyID    int64          `json:"companyId" db:"company_id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Field        string         `json:"field" db:"field"`
	City         string         `json:"city" db:"city"`
	Type         InternshipType `json:"type" db:"type"`
	Duration     string         `json:"duration" db:"duration"` // Free text such as "3 mois" or "6 weeks"
	Capacity     int            `json:"capacity" db:"capacity"`
	Compensation *float64       `json:"compensation,omitempty" db:"compensation"`
	StartDate    *time.Time     `json:"startDate,omitempty" db:"start_date"`
	EndDate      *time.Time     `json:"endDate,omitempty" db:"end_date"`
	Deadline     *time.Time     `json:"deadline,omitempty" db:"deadline"`
	IsActive     bool           `json:"isActive" db:"is_active"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
	// Relational fields
	Company     *CompanyProfile `json:"company,omitempty"` // Owning company, no db tag
	PlacesTaken int             `json:"placesTaken"`       // Count of accepted applications, computed at read time
}

// IsExpired reports whether the application deadline has passed relative to today.
// An offer without a deadline never expires.
func (o *Offer) IsExpired(today time.Time) bool {
	if o.Deadline == nil {
		return false
	}
	return o.Deadline.Before(today)
}

// IsFull reports whether accepted applications have reached capacity.
func (o *Offer) IsFull() bool {
	return o.PlacesTaken >= o.Capacity
}

// IsAvailable reports whether the offer currently accepts applications.
func (o *Offer) IsAvailable(today time.Time) bool {
	return o.IsActive && !o.IsExpired(today) && !o.IsFull()
}
