package models

// Role defines the user role type
type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleCompany   Role = "COMPANY"
	RoleAdmin     Role = "ADMIN"
)

// IsValid reports whether the role is one of the known role values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCandidate, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// InternshipType represents the working arrangement of an offer
type InternshipType string

const (
	InternshipOnSite InternshipType = "ON_SITE"
	InternshipRemote InternshipType = "REMOTE"
	InternshipHybrid InternshipType = "HYBRID"
)

// IsValid reports whether the internship type is a known value.
func (t InternshipType) IsValid() bool {
	switch t {
	case InternshipOnSite, InternshipRemote, InternshipHybrid:
		return true
	}
	return false
}

// ApplicationStatus represents the lifecycle state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// IsValid reports whether the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// NotificationType categorizes notifications delivered to users
type NotificationType string

const (
	NotificationNewApplication      NotificationType = "NEW_APPLICATION"
	NotificationApplicationAccepted NotificationType = "APPLICATION_ACCEPTED"
	NotificationApplicationRejected NotificationType = "APPLICATION_REJECTED"
	NotificationNewCandidate        NotificationType = "NEW_CANDIDATE"
)
