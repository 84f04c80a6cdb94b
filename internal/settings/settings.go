// Package settings persists user preferences: prompt templates, the target AI
// service, premium tiers and sites where capture is disabled.
package settings

import (
	"errors"
	"net/url"
	"strings"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/prompts"
	"github.com/samber/lo"
)

// CurrentVersion is the schema version written by this build.
const CurrentVersion = "1.1.0"

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrDefaultPrompt  = errors.New("cannot delete the default prompt")
	ErrEmptyPrompt    = errors.New("prompt name and content are required")
)

// Data is the persisted settings document.
type Data struct {
	Version         string           `yaml:"version"`
	Prompts         []prompts.Prompt `yaml:"prompts"`
	AIServiceID     aiservice.ID     `yaml:"aiServiceId"`
	PremiumServices map[string]bool  `yaml:"premiumServices"`
	ExcludedSites   []string         `yaml:"excludedSites"`

	// Keys written by the first release, migrated on load.
	LegacyAIURL          string `yaml:"aiUrl,omitempty"`
	LegacyPromptTemplate string `yaml:"promptTemplate,omitempty"`
}

// Defaults returns the settings used before anything has been saved.
func Defaults() *Data {
	return &Data{
		Version:         CurrentVersion,
		Prompts:         prompts.Preconfigured(),
		AIServiceID:     aiservice.Default().ID,
		PremiumServices: map[string]bool{},
		ExcludedSites:   aiservice.Hosts(),
	}
}

// SummaryService is the selected service and the budget that applies to it.
type SummaryService struct {
	Service        aiservice.Service
	Premium        bool
	CharacterLimit int
}

// DefaultPrompt returns the prompt flagged as default, or the built-in fallback.
func (d *Data) DefaultPrompt() prompts.Prompt {
	if p, ok := lo.Find(d.Prompts, func(p prompts.Prompt) bool { return p.IsDefault }); ok {
		return p
	}
	return prompts.Fallback()
}

// Prompt returns the prompt with the given ID.
func (d *Data) Prompt(id string) (prompts.Prompt, error) {
	p, ok := lo.Find(d.Prompts, func(p prompts.Prompt) bool { return p.ID == id })
	if !ok {
		return prompts.Prompt{}, ErrPromptNotFound
	}
	return p, nil
}

// SummaryService resolves the selected service and its character budget.
// An unknown stored ID falls back to the default service.
func (d *Data) SummaryService() SummaryService {
	svc, err := aiservice.Get(d.AIServiceID)
	if err != nil {
		svc = aiservice.Default()
	}
	premium := d.PremiumServices[string(svc.ID)]
	return SummaryService{
		Service:        svc,
		Premium:        premium,
		CharacterLimit: svc.Limit(premium),
	}
}

// IsExcluded reports whether host, or a parent domain of it, is on the excluded list.
func (d *Data) IsExcluded(host string) bool {
	host = NormalizeSite(host)
	if host == "" {
		return false
	}
	return lo.ContainsBy(d.ExcludedSites, func(site string) bool {
		site = NormalizeSite(site)
		return site != "" && (host == site || strings.HasSuffix(host, "."+site))
	})
}

// NormalizeSite reduces a URL or host to a bare lowercase hostname without "www.".
func NormalizeSite(site string) string {
	site = strings.ToLower(strings.TrimSpace(site))
	if strings.Contains(site, "://") {
		if u, err := url.Parse(site); err == nil {
			site = u.Hostname()
		}
	}
	site = strings.TrimSuffix(site, "/")
	if i := strings.IndexByte(site, '/'); i >= 0 {
		site = site[:i]
	}
	return strings.TrimPrefix(site, "www.")
}

// fillMissing restores defaults for fields a hand-edited file left out.
func (d *Data) fillMissing() {
	if len(d.Prompts) == 0 {
		d.Prompts = prompts.Preconfigured()
	}
	if d.AIServiceID == "" {
		d.AIServiceID = aiservice.Default().ID
	}
	if d.PremiumServices == nil {
		d.PremiumServices = map[string]bool{}
	}
	if d.ExcludedSites == nil {
		d.ExcludedSites = aiservice.Hosts()
	}
}
