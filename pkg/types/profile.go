package types

import "fmt"

// DefaultProfileName is the profile that always exists after a load
const DefaultProfileName = "default"

// ProfileType is the credential-resolution strategy a profile implies
type ProfileType int

const (
	// ProfileTypeUnclassified marks a profile that has been loaded but not yet classified
	ProfileTypeUnclassified ProfileType = iota
	ProfileTypeSSO
	ProfileTypeAssumeRole
	ProfileTypeStaticCredentials
	ProfileTypeEnvironment
	ProfileTypeDefault
	// ProfileTypeUnknown is the fallback when no field combination identifies a strategy
	ProfileTypeUnknown
)

var profileTypeNames = map[ProfileType]string{
	ProfileTypeUnclassified:      "Unclassified",
	ProfileTypeSSO:               "SSO",
	ProfileTypeAssumeRole:        "AssumeRole",
	ProfileTypeStaticCredentials: "StaticCredentials",
	ProfileTypeEnvironment:       "Environment",
	ProfileTypeDefault:           "Default",
	ProfileTypeUnknown:           "Unknown",
}

func (t ProfileType) String() string {
	if name, ok := profileTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ProfileType(%d)", int(t))
}

// MarshalText lets yaml and json output use the type name
func (t ProfileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AWSProfile represents a named AWS CLI profile merged from ~/.aws/credentials and ~/.aws/config
type AWSProfile struct {
	Name   string      `json:"name" yaml:"name"`
	Type   ProfileType `json:"type" yaml:"type"`
	Region string      `json:"region,omitempty" yaml:"region,omitempty"`

	// Assume-role settings
	SourceProfile    string `json:"source_profile,omitempty" yaml:"source_profile,omitempty"`
	RoleARN          string `json:"role_arn,omitempty" yaml:"role_arn,omitempty"`
	ExternalID       string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	MFASerial        string `json:"mfa_serial,omitempty" yaml:"mfa_serial,omitempty"`
	RoleSessionName  string `json:"role_session_name,omitempty" yaml:"role_session_name,omitempty"`
	CredentialSource string `json:"credential_source,omitempty" yaml:"credential_source,omitempty"`

	// SSO settings
	SSOStartURL  string `json:"sso_start_url,omitempty" yaml:"sso_start_url,omitempty"`
	SSORegion    string `json:"sso_region,omitempty" yaml:"sso_region,omitempty"`
	SSOAccountID string `json:"sso_account_id,omitempty" yaml:"sso_account_id,omitempty"`
	SSORoleName  string `json:"sso_role_name,omitempty" yaml:"sso_role_name,omitempty"`
	SSOSession   string `json:"sso_session,omitempty" yaml:"sso_session,omitempty"`

	// HasStaticCredentials is true when the credentials file holds both access key fields.
	// The key material itself is never kept.
	HasStaticCredentials bool `json:"has_static_credentials" yaml:"has_static_credentials"`

	// BlankKeys holds config keys that were present with an empty value. Such a key is
	// still set: `role_arn =` makes an assume-role profile, just not a working one.
	BlankKeys map[string]bool `json:"-" yaml:"-"`

	IsValid      bool   `json:"is_valid" yaml:"is_valid"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// NewAWSProfile returns an empty profile that is valid until validation says otherwise
func NewAWSProfile(name string) *AWSProfile {
	return &AWSProfile{
		Name:    name,
		IsValid: true,
	}
}

// IsDefault reports whether this is the "default" profile
func (p *AWSProfile) IsDefault() bool {
	return p.Name == DefaultProfileName
}
