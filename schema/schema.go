// Package schema validates inbound JSON payloads against embedded JSON
// Schemas before anything reaches the store.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed contribution.schema.json
var contributionSchemaJSON string

//go:embed pending_sentence.schema.json
var pendingSentenceSchemaJSON string

//go:embed user.schema.json
var userSchemaJSON string

var (
	contributionSchema    = mustCompile("contribution.schema.json", contributionSchemaJSON)
	pendingSentenceSchema = mustCompile("pending_sentence.schema.json", pendingSentenceSchemaJSON)
	userSchema            = mustCompile("user.schema.json", userSchemaJSON)
)

// ContributionPayload is a validated POST /contributions body.
type ContributionPayload struct {
	TranslatorAuthID   string     `json:"translator_auth_id"`
	Language           string     `json:"language"`
	EnglishSentence    string     `json:"english_sentence"`
	TranslatedSentence string     `json:"translated_sentence"`
	Source             string     `json:"source"`
	Timestamp          *time.Time `json:"timestamp,omitempty"`
}

// PendingSentencePayload is a validated POST /sentences body.
type PendingSentencePayload struct {
	EnglishSentence string     `json:"english_sentence"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
}

// UserPayload is a validated POST /users/register body.
type UserPayload struct {
	FirebaseUID string `json:"firebaseuid"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
}

func ValidateContributionPayload(raw []byte) (*ContributionPayload, error) {
	var payload ContributionPayload
	if err := validateAndDecode(contributionSchema, raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func ValidatePendingSentencePayload(raw []byte) (*PendingSentencePayload, error) {
	var payload PendingSentencePayload
	if err := validateAndDecode(pendingSentenceSchema, raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func ValidateUserPayload(raw []byte) (*UserPayload, error) {
	var payload UserPayload
	if err := validateAndDecode(userSchema, raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func validateAndDecode(schema *jsonschema.Schema, raw []byte, target any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("request body is required")
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("payload validation failed: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func mustCompile(name, schemaJSON string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader([]byte(schemaJSON))); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}
