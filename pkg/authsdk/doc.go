/*
Package authsdk is a Go client for the oauthd authorization server.

A relying application registers once, then runs the authorization-code flow
for each user:

	client := authsdk.NewSDKClient("https://auth.example.com")

	login, err := client.Login(ctx, email, password)
	project, err := client.CreateProject(ctx, login.Token, authsdk.CreateProjectRequest{
		Name:        "Example App",
		RedirectURL: "https://app.example/cb",
		Scope:       []string{"given_name", "email"},
	})

	code, err := client.Authorize(ctx, login.Token, project.ID, project.RedirectURL, []string{"given_name"})
	tok, err := client.ExchangeCode(ctx, authsdk.TokenRequest{
		ClientID:     project.ID,
		ClientSecret: project.Secret,
		Code:         code,
		RedirectURI:  project.RedirectURL,
	})
	info, err := client.UserInfo(ctx, tok.AccessToken)

Every non-2xx response is returned as an *APIError. StatusOf extracts the
status from any error returned by the client.

Identity tokens issued when openid is granted can be checked against the
server's published key with NewVerifier.
*/
package authsdk
