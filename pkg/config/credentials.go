package config

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/ticketgraph/pkg/errors"
)

// Environment variables holding tracker credentials.
const (
	EnvEmail    = "JIRA_EMAIL"
	EnvToken    = "JIRA_API_TOKEN"
	EnvBaseURL  = "JIRA_BASE_URL"
	EnvPacked   = "JIRA_DEPENDENCY"
	EnvFlagged  = "JIRA_FLAGGED_CF"
	EnvRedisURL = "TICKETGRAPH_REDIS_URL"
)

// Credentials authenticate against the tracker with basic auth.
type Credentials struct {
	Email   string
	Token   string
	BaseURL string // Without trailing slash
}

type packedCredentials struct {
	Email   string `json:"email"`
	Token   string `json:"token"`
	BaseURL string `json:"base_url"`
}

// LoadCredentials reads credentials through getenv. Individual variables
// take precedence; the packed blob only fills gaps. It fails with
// MISSING_CREDENTIALS naming every value still absent.
func LoadCredentials(getenv func(string) string) (Credentials, error) {
	c := Credentials{
		Email:   strings.TrimSpace(getenv(EnvEmail)),
		Token:   strings.TrimSpace(getenv(EnvToken)),
		BaseURL: strings.TrimSpace(getenv(EnvBaseURL)),
	}

	if packed := strings.TrimSpace(getenv(EnvPacked)); packed != "" && !c.complete() {
		var p packedCredentials
		if err := json.Unmarshal([]byte(packed), &p); err != nil {
			return Credentials{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s is not valid JSON", EnvPacked)
		}
		c.Email = cmpOr(c.Email, p.Email)
		c.Token = cmpOr(c.Token, p.Token)
		c.BaseURL = cmpOr(c.BaseURL, p.BaseURL)
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	var missing []string
	if c.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if c.Token == "" {
		missing = append(missing, EnvToken)
	}
	if c.BaseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if len(missing) > 0 {
		return Credentials{}, errors.New(errors.ErrCodeMissingCredentials,
			"missing tracker credentials: set %s (or %s)", strings.Join(missing, ", "), EnvPacked)
	}
	return c, nil
}

func (c Credentials) complete() bool {
	return c.Email != "" && c.Token != "" && c.BaseURL != ""
}

// Scope identifies the site and account, for keeping cached responses apart.
func (c Credentials) Scope() string {
	return c.BaseURL + "|" + c.Email + ":"
}

func cmpOr(a, b string) string {
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}
