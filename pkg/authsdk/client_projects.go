package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateProject registers a client application owned by the session's user.
// The returned Secret is shown only once.
func (c *SDKClient) CreateProject(ctx context.Context, sessionToken string, req CreateProjectRequest) (*CreatedProjectResponse, error) {
	var out CreatedProjectResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/projects", req, &out, sessionToken, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetProject(ctx context.Context, id string) (*ProjectResponse, error) {
	var out ProjectResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &out, "", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
