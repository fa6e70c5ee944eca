package client

import "context"

// VIPStatus is the result of classifying a guest against the VIP programme.
type VIPStatus struct {
	IsVIP bool
	Tier  string
}

// VIPClassifier decides whether a guest email belongs to the VIP programme.
// Implementations are expected to degrade gracefully: a classifier failure
// must never abort client creation.
type VIPClassifier interface {
	Classify(ctx context.Context, email string) VIPStatus
}
