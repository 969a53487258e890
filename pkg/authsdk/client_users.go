package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges an email and password for a session token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &out, "", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new user.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", req, &out, "", http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &out, "", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches the user. sessionToken must belong to the same user.
func (c *SDKClient) UpdateUser(ctx context.Context, sessionToken, id string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id), req, &out, sessionToken, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the user. sessionToken must belong to the same user.
func (c *SDKClient) DeleteUser(ctx context.Context, sessionToken, id string) (*DeletedResponse, error) {
	var out DeletedResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, &out, sessionToken, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
