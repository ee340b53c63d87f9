package aws

import (
	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// classifier is one rule of the precedence list; the first matching rule wins
type classifier struct {
	typ     pkgtypes.ProfileType
	matches func(p *pkgtypes.AWSProfile) bool
}

var classifiers = []classifier{
	{pkgtypes.ProfileTypeSSO, isSSO},
	{pkgtypes.ProfileTypeAssumeRole, func(p *pkgtypes.AWSProfile) bool { return isSet(p, keyRoleARN, p.RoleARN) }},
	{pkgtypes.ProfileTypeStaticCredentials, func(p *pkgtypes.AWSProfile) bool { return p.HasStaticCredentials }},
	{pkgtypes.ProfileTypeEnvironment, func(p *pkgtypes.AWSProfile) bool { return isSet(p, keyCredentialSource, p.CredentialSource) }},
	{pkgtypes.ProfileTypeDefault, (*pkgtypes.AWSProfile).IsDefault},
}

// Classify returns the credential-resolution strategy implied by the profile's own fields.
// Profiles matching no rule are ProfileTypeUnknown.
func Classify(p *pkgtypes.AWSProfile) pkgtypes.ProfileType {
	for _, c := range classifiers {
		if c.matches(p) {
			return c.typ
		}
	}
	return pkgtypes.ProfileTypeUnknown
}

func isSSO(p *pkgtypes.AWSProfile) bool {
	return isSet(p, keySSOStartURL, p.SSOStartURL) ||
		isSet(p, keySSOSession, p.SSOSession) ||
		(isSet(p, keySSOAccountID, p.SSOAccountID) && isSet(p, keySSORoleName, p.SSORoleName))
}
