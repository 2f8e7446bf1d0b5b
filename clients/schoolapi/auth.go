package schoolapi

import (
	"context"

	"motoschool/models"
)

// Login exchanges credentials with the upstream API. Nothing is stored
// locally; the returned token belongs to the caller.
func (c *DefaultClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.postJSON(ctx, "/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an upstream account during checkout.
func (c *DefaultClient) Register(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.postJSON(ctx, "/auth/register", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
