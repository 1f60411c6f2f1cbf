package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@example.com"`              // User's email address
	Password    string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role        Role       `json:"role" db:"role" example:"CANDIDATE"`                       // User's role (CANDIDATE, COMPANY or ADMIN)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// CandidateProfile defines the candidate model based on the 'candidate_profiles' table
type CandidateProfile struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	FirstName  string     `json:"firstName" db:"first_name"`
	LastName   string     `json:"lastName" db:"last_name"`
	Phone      *string    `json:"phone,omitempty" db:"phone"`
	Field      *string    `json:"field,omitempty" db:"field"`             // Area of study or desired internship field
	School     *string    `json:"school,omitempty" db:"school"`           // Current school or university
	Bio        *string    `json:"bio,omitempty" db:"bio"`                 // Short free-text presentation
	ResumePath *string    `json:"resumePath,omitempty" db:"resume_path"`  // Stored resume file path (nullable)
	BirthDate  *time.Time `json:"birthDate,omitempty" db:"birth_date"`    // Date of birth (nullable)
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	User       *User      `json:"user,omitempty"` // Relation, no db tag
}

// CompanyProfile defines the company model based on the 'company_profiles' table
type CompanyProfile struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	City        *string   `json:"city,omitempty" db:"city"`
	LogoPath    *string   `json:"logoPath,omitempty" db:"logo_path"` // Stored logo file path (nullable)
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	User        *User     `json:"user,omitempty"` // Relation, no db tag
}

// RefreshToken defines the refresh token model based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
