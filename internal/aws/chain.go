package aws

import (
	"fmt"
	"slices"
	"strings"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// Messages recorded on profiles by the validator
const (
	msgMissingRoleSource = "role_arn requires either source_profile or credential_source"
	msgUnknownSource     = "could not determine credential source from configuration; " +
		"the profile may still work with environment variables or an instance role"
)

// Validator checks profiles against the classified contents of a registry
type Validator struct {
	registry *Registry
}

// NewValidator creates a validator that resolves source profiles in registry
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a classified profile and returns its validity and, when relevant, a
// human-readable message. Unknown profiles are valid but carry an explanation.
func (v *Validator) Validate(p *pkgtypes.AWSProfile) (bool, string) {
	switch p.Type {
	case pkgtypes.ProfileTypeSSO:
		return validateSSO(p)
	case pkgtypes.ProfileTypeAssumeRole:
		return v.validateAssumeRole(p)
	case pkgtypes.ProfileTypeUnknown:
		return true, msgUnknownSource
	default:
		return true, ""
	}
}

func validateSSO(p *pkgtypes.AWSProfile) (bool, string) {
	type field struct {
		key   string
		value string
	}

	// A session reference carries the start URL and region
	required := []field{
		{keySSOAccountID, p.SSOAccountID},
		{keySSORoleName, p.SSORoleName},
	}
	if p.SSOSession == "" {
		required = append([]field{
			{keySSOStartURL, p.SSOStartURL},
			{keySSORegion, p.SSORegion},
		}, required...)
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return false, "missing required SSO fields: " + strings.Join(missing, ", ")
	}
	return true, ""
}

func (v *Validator) validateAssumeRole(p *pkgtypes.AWSProfile) (bool, string) {
	// An external provider is trusted without further checks
	if isSet(p, keyCredentialSource, p.CredentialSource) {
		return true, ""
	}
	if !isSet(p, keySourceProfile, p.SourceProfile) {
		return false, msgMissingRoleSource
	}
	return v.walkChain(p)
}

// walkChain follows source_profile references from p until a profile that can supply
// credentials is reached. The visited path makes cycle detection terminate on any registry.
func (v *Validator) walkChain(p *pkgtypes.AWSProfile) (bool, string) {
	visited := []string{p.Name}
	next := p.SourceProfile

	for {
		if slices.Contains(visited, next) {
			path := append(slices.Clone(visited), next)
			return false, "circular dependency detected in source_profile chain: " + strings.Join(path, " -> ")
		}

		ref, ok := v.registry.Get(next)
		if !ok {
			return false, fmt.Sprintf("source profile %q not found", next)
		}

		if terminatesChain(ref) {
			return true, ""
		}
		if !isSet(ref, keySourceProfile, ref.SourceProfile) {
			// Nothing further to follow; ambient credentials may still apply at runtime
			return true, ""
		}

		visited = append(visited, next)
		next = ref.SourceProfile
	}
}

func terminatesChain(p *pkgtypes.AWSProfile) bool {
	return p.HasStaticCredentials ||
		p.Type == pkgtypes.ProfileTypeSSO ||
		isSet(p, keyCredentialSource, p.CredentialSource) ||
		p.IsDefault()
}
