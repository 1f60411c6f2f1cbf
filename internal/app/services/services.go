package services

import "context"

// Services defined in this package:
// - AuthService: Handles authentication, registration and token lifecycle
// - OfferService: Handles internship offer management and browsing
// - ApplicationService: Handles the application lifecycle and decisions
// - NotificationService: Handles notification delivery and read state
// - ProfileService: Handles candidate and company profile management

// TxRunner runs a function inside a database transaction. Repository calls
// made with the context passed to fn join that transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
