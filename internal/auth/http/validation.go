package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

// Request schemas are compiled once at start up. A schema that does not
// compile is a programming error.
var (
	authorizeQuerySchema = mustCompile(`{
		"type": "object",
		"properties": {
			"response_type": {"type": "string", "enum": ["code"]},
			"client_id":     {"type": "string", "minLength": 1},
			"redirect_uri":  {"type": "string", "minLength": 1, "format": "uri"},
			"scope":         {"type": "string", "minLength": 1}
		},
		"required": ["response_type", "client_id", "redirect_uri", "scope"]
	}`)

	tokenBodySchema = mustCompile(`{
		"type": "object",
		"properties": {
			"client_id":     {"type": "string", "minLength": 1},
			"client_secret": {"type": "string", "minLength": 1},
			"code":          {"type": "string", "minLength": 1},
			"grant_type":    {"type": "string", "enum": ["authorization_code"]},
			"redirect_uri":  {"type": "string", "minLength": 1, "format": "uri"}
		},
		"required": ["client_id", "client_secret", "code", "grant_type", "redirect_uri"]
	}`)

	loginBodySchema = mustCompile(`{
		"type": "object",
		"properties": {
			"email":    {"type": "string", "minLength": 1, "format": "email"},
			"password": {"type": "string", "minLength": 1}
		},
		"required": ["email", "password"]
	}`)

	createUserSchema = mustCompile(fmt.Sprintf(`{
		"type": "object",
		"properties": %s,
		"required": ["email", "password", "givenName", "familyName"]
	}`, userProperties))

	updateUserSchema = mustCompile(fmt.Sprintf(`{
		"type": "object",
		"properties": %s
	}`, userProperties))

	createProjectSchema = mustCompile(fmt.Sprintf(`{
		"type": "object",
		"properties": {
			"name":        {"type": "string", "minLength": 1},
			"redirectURL": {"type": "string", "minLength": 1, "format": "uri"},
			"scope": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string", "enum": %s}
			}
		},
		"required": ["name", "redirectURL", "scope"]
	}`, mustJSON(domain.Scopes)))
)

var userProperties = fmt.Sprintf(`{
	"email":       {"type": "string", "minLength": 1, "format": "email"},
	"password":    {"type": "string", "minLength": 1},
	"givenName":   {"type": "string", "minLength": 1},
	"familyName":  {"type": "string", "minLength": 1},
	"picture":     {"type": "string", "format": "uri"},
	"phoneNumber": {"type": "string", "minLength": 1},
	"birthdate":   {"type": "string", "format": "date"},
	"gender":      {"type": "string", "enum": %s}
}`, mustJSON([]string{domain.GenderFemale, domain.GenderMale}))

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile request schema: %v", err))
	}
	return s
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// validate reports every violation of s in a single BadRequest.
func validate(s *gojsonschema.Schema, doc gojsonschema.JSONLoader) error {
	res, err := s.Validate(doc)
	if err != nil {
		return httpx.NewError(http.StatusBadRequest, "Malformed request", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return httpx.BadRequest(strings.Join(msgs, "; "))
}

// decodeJSONBody validates the raw body against s before decoding it into v.
func decodeJSONBody(r *http.Request, s *gojsonschema.Schema, v any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return httpx.NewError(http.StatusBadRequest, "Unreadable request body", err)
	}
	if err := validate(s, gojsonschema.NewBytesLoader(raw)); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return httpx.NewError(http.StatusBadRequest, "Malformed request", err)
	}
	return nil
}

// valuesDocument keeps the first value of each key, which is how query and
// form parameters are read everywhere else.
func valuesDocument(vals url.Values) gojsonschema.JSONLoader {
	doc := make(map[string]any, len(vals))
	for k := range vals {
		doc[k] = vals.Get(k)
	}
	return gojsonschema.NewGoLoader(doc)
}
