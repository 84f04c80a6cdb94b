// Package aiservice describes the AI chat services text can be handed off to.
package aiservice

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// ID identifies a supported AI chat service.
type ID string

const (
	ChatGPT  ID = "chatgpt"
	Claude   ID = "claude"
	Gemini   ID = "gemini"
	DeepSeek ID = "deepseek"
	Grok     ID = "grok"
)

// HandoffParam is the query parameter that marks a tab opened by tldr.
const HandoffParam = "justTLDR"

// ErrUnknownService is returned for IDs that are not in the registry.
var ErrUnknownService = errors.New("unknown AI service")

// Service is an AI chat web application and the input budget it accepts.
type Service struct {
	ID                    ID     `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	URL                   string `json:"url" yaml:"url"`
	CharacterLimit        int    `json:"characterLimit" yaml:"characterLimit"`
	PremiumCharacterLimit int    `json:"premiumCharacterLimit" yaml:"premiumCharacterLimit"`
}

// Limits were found by trial and error against each service's free and paid tiers.
var services = []Service{
	{ID: ChatGPT, Name: "ChatGPT", URL: "https://chatgpt.com", CharacterLimit: 20000, PremiumCharacterLimit: 200000},
	{ID: Claude, Name: "Claude", URL: "https://claude.ai/new", CharacterLimit: 50000, PremiumCharacterLimit: 250000},
	{ID: DeepSeek, Name: "DeepSeek", URL: "https://chat.deepseek.com", CharacterLimit: 200000, PremiumCharacterLimit: 200000},
	{ID: Gemini, Name: "Gemini", URL: "https://gemini.google.com/app", CharacterLimit: 32000, PremiumCharacterLimit: 250000},
	{ID: Grok, Name: "Grok", URL: "https://grok.com", CharacterLimit: 250000, PremiumCharacterLimit: 250000},
}

// All returns every registered service in display order.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Default returns the service used when nothing is configured.
func Default() Service {
	return services[0]
}

// Get looks up a service by ID.
func Get(id ID) (Service, error) {
	svc, ok := lo.Find(services, func(s Service) bool { return s.ID == id })
	if !ok {
		return Service{}, fmt.Errorf("%w: %q", ErrUnknownService, id)
	}
	return svc, nil
}

// ParseID converts user input into a known ID, ignoring case and surrounding space.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Get(id); err != nil {
		return "", err
	}
	return id, nil
}

// IDs returns the registered IDs as strings.
func IDs() []string {
	return lo.Map(services, func(s Service, _ int) string { return string(s.ID) })
}

// Limit returns the character budget for the free or premium tier.
func (s Service) Limit(premium bool) int {
	if premium {
		return s.PremiumCharacterLimit
	}
	return s.CharacterLimit
}

// Host returns the hostname of the service URL.
func (s Service) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Hosts returns the hostnames of every registered service.
func Hosts() []string {
	return lo.Map(services, func(s Service, _ int) string { return s.Host() })
}

// HandoffURL returns the service URL tagged with the handoff marker.
func HandoffURL(s Service) string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return s.URL + "?" + HandoffParam
	}
	u.RawQuery = HandoffParam
	return u.String()
}

// IsHandoffURL reports whether raw points at a service's chat entry page and
// carries the handoff marker.
func IsHandoffURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	svc, ok := lo.Find(services, func(s Service) bool { return s.Host() == u.Hostname() })
	if !ok {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return path == entryPath(svc) && u.Query().Has(HandoffParam)
}

func entryPath(s Service) string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
