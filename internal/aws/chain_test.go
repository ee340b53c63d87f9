package aws

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// validatedRegistry loads the given file content and runs both validation passes
func validatedRegistry(t *testing.T, config, credentials string) *Registry {
	t.Helper()
	r := NewRegistry(afero.NewMemMapFs(), nil)
	require.NoError(t, r.LoadReaders(strings.NewReader(config), strings.NewReader(credentials)))
	validateRegistry(r, zap.NewNop().Sugar())
	return r
}

func TestValidator_SSO(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		valid   bool
		message string
	}{
		{
			name: "session with account and role",
			config: `[profile p]
sso_session = corp
sso_account_id = 123456789012
sso_role_name = Admin`,
			valid: true,
		},
		{
			name: "legacy complete",
			config: `[profile p]
sso_start_url = https://corp.awsapps.com/start
sso_region = us-east-1
sso_account_id = 123456789012
sso_role_name = Admin`,
			valid: true,
		},
		{
			name:    "start url only",
			config:  "[profile p]\nsso_start_url = https://corp.awsapps.com/start",
			valid:   false,
			message: "missing required SSO fields: sso_region, sso_account_id, sso_role_name",
		},
		{
			name:    "session without role",
			config:  "[profile p]\nsso_session = corp\nsso_account_id = 123456789012",
			valid:   false,
			message: "missing required SSO fields: sso_role_name",
		},
		{
			name:    "account and role without session or start url",
			config:  "[profile p]\nsso_account_id = 123456789012\nsso_role_name = Admin",
			valid:   false,
			message: "missing required SSO fields: sso_start_url, sso_region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validatedRegistry(t, tt.config, "")
			p, ok := r.Get("p")
			require.True(t, ok)

			assert.Equal(t, tt.valid, p.IsValid)
			assert.Equal(t, tt.message, p.ErrorMessage)
		})
	}
}

func TestValidator_AssumeRole(t *testing.T) {
	config := `
[profile no-source]
role_arn = arn:aws:iam::123456789012:role/a

[profile ec2]
role_arn = arn:aws:iam::123456789012:role/a
credential_source = Ec2InstanceMetadata

[profile ec2-with-missing-source]
role_arn = arn:aws:iam::123456789012:role/a
credential_source = Environment
source_profile = ghost

[profile to-ghost]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = ghost

[profile to-static]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = static

[profile to-sso]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = sso

[profile to-env]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = env

[profile to-bare]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = bare

[profile via-broken]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = to-ghost

[profile sso]
sso_session = corp

[profile env]
credential_source = EcsContainer

[profile bare]
region = us-east-1

[profile self]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = self
`
	credentials := "[static]\naws_access_key_id = x\naws_secret_access_key = y\n"

	r := validatedRegistry(t, config, credentials)

	tests := []struct {
		profile string
		valid   bool
		message string
	}{
		{"no-source", false, msgMissingRoleSource},
		{"ec2", true, ""},
		{"ec2-with-missing-source", true, ""},
		{"to-ghost", false, `source profile "ghost" not found`},
		{"to-static", true, ""},
		{"to-sso", true, ""},
		{"to-env", true, ""},
		{"to-bare", true, ""},
		{"via-broken", false, `source profile "ghost" not found`},
		{"self", false, "circular dependency detected in source_profile chain: self -> self"},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			p, ok := r.Get(tt.profile)
			require.True(t, ok)

			assert.Equal(t, tt.valid, p.IsValid)
			assert.Equal(t, tt.message, p.ErrorMessage)
		})
	}
}

func TestValidator_ChainToDefault(t *testing.T) {
	config := `
[profile chain3]
role_arn = arn:aws:iam::123456789012:role/three
source_profile = chain2

[profile chain2]
role_arn = arn:aws:iam::123456789012:role/two
source_profile = chain1

[profile chain1]
role_arn = arn:aws:iam::123456789012:role/one
source_profile = default
`
	r := validatedRegistry(t, config, "")

	for _, name := range []string{"chain1", "chain2", "chain3"} {
		p, _ := r.Get(name)
		assert.True(t, p.IsValid, name)
		assert.Empty(t, p.ErrorMessage, name)
	}
}

func TestValidator_Cycle(t *testing.T) {
	config := `
[profile A]
role_arn = arn:aws:iam::123456789012:role/a
source_profile = B

[profile B]
role_arn = arn:aws:iam::123456789012:role/b
source_profile = C

[profile C]
role_arn = arn:aws:iam::123456789012:role/c
source_profile = A

[profile D]
role_arn = arn:aws:iam::123456789012:role/d
source_profile = A
`
	r := validatedRegistry(t, config, "")

	want := map[string]string{
		"A": "circular dependency detected in source_profile chain: A -> B -> C -> A",
		"B": "circular dependency detected in source_profile chain: B -> C -> A -> B",
		"C": "circular dependency detected in source_profile chain: C -> A -> B -> C",
		"D": "circular dependency detected in source_profile chain: D -> A -> B -> C -> A",
	}
	for name, message := range want {
		p, _ := r.Get(name)
		assert.False(t, p.IsValid, name)
		assert.Equal(t, message, p.ErrorMessage, name)
	}
}

func TestValidator_AlwaysValidTypes(t *testing.T) {
	config := "[profile env]\ncredential_source = Environment\n[profile unknown]\nregion = us-east-1\n"
	credentials := "[static]\naws_access_key_id = x\naws_secret_access_key = y\n"

	r := validatedRegistry(t, config, credentials)

	for _, name := range []string{"default", "env", "static"} {
		p, _ := r.Get(name)
		assert.True(t, p.IsValid, name)
		assert.Empty(t, p.ErrorMessage, name)
	}

	unknown, _ := r.Get("unknown")
	assert.True(t, unknown.IsValid)
	assert.Equal(t, msgUnknownSource, unknown.ErrorMessage)
}
