package settings

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/prompts"
	"github.com/samber/lo"
)

// legacyPromptID is the ID given to a template carried over from the first release.
const legacyPromptID = "custom-legacy"

// migrate upgrades an older document in place.
func migrate(d *Data) error {
	current := semver.MustParse(CurrentVersion)

	version := d.Version
	if version == "" {
		// Files from the first release carried no version at all
		version = "1.0.0"
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid settings version %q: %w", d.Version, err)
	}
	if v.GreaterThan(current) {
		return fmt.Errorf("settings version %s is newer than supported %s", v, current)
	}
	if !v.LessThan(current) && d.LegacyAIURL == "" && d.LegacyPromptTemplate == "" {
		return nil
	}

	if d.LegacyAIURL != "" {
		host := NormalizeSite(d.LegacyAIURL)
		if svc, ok := lo.Find(aiservice.All(), func(s aiservice.Service) bool { return s.Host() == host }); ok {
			d.AIServiceID = svc.ID
		}
		d.LegacyAIURL = ""
	}

	if d.LegacyPromptTemplate != "" {
		if len(d.Prompts) == 0 {
			d.Prompts = prompts.Preconfigured()
		}
		d.Prompts = lo.Map(d.Prompts, func(p prompts.Prompt, _ int) prompts.Prompt {
			p.IsDefault = false
			return p
		})
		d.Prompts = append(d.Prompts, prompts.Prompt{
			ID:        legacyPromptID,
			Name:      "Imported template",
			Content:   d.LegacyPromptTemplate,
			IsDefault: true,
		})
		d.LegacyPromptTemplate = ""
	}

	d.Version = CurrentVersion
	return nil
}
