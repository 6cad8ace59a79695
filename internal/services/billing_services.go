package services

import (
	"context"
	"strings"
)

// BillingService opens provider billing-portal sessions for existing
// customers, looked up by email.
type BillingService struct {
	Provider PortalProvider
	BaseURL  string
}

func NewBillingService(provider PortalProvider, baseURL string) *BillingService {
	return &BillingService{
		Provider: provider,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *BillingService) CreatePortalSession(ctx context.Context, email, returnURL string) (string, error) {
	if email == "" {
		return "", &ValidationError{Message: "email is required"}
	}

	customerID, err := s.Provider.FindCustomerByEmail(ctx, email)
	if err != nil {
		return "", &ProviderError{Op: "customer lookup", Err: err}
	}
	if customerID == "" {
		return "", &NotFoundError{Resource: "customer", Key: email}
	}

	if returnURL == "" {
		returnURL = s.BaseURL + "/account"
	}
	url, err := s.Provider.CreatePortalSession(ctx, customerID, returnURL)
	if err != nil {
		return "", &ProviderError{Op: "create portal session", Err: err}
	}
	return url, nil
}
