package aws

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

func TestExportINI(t *testing.T) {
	dev := pkgtypes.AWSProfile{
		Name:            "dev",
		Region:          "us-east-1",
		RoleARN:         "arn:aws:iam::123456789012:role/dev",
		SourceProfile:   "default",
		RoleSessionName: "dev-session",
	}
	def := pkgtypes.AWSProfile{Name: "default", Region: "eu-west-1", HasStaticCredentials: true}

	var buf bytes.Buffer
	require.NoError(t, ExportINI(&buf, def, dev))

	out := buf.String()
	assert.Contains(t, out, "[default]")
	assert.Contains(t, out, "[profile dev]")
	assert.Regexp(t, `role_arn\s*=\s*arn:aws:iam::123456789012:role/dev`, out)
	assert.NotContains(t, out, "aws_access_key_id")
	assert.NotContains(t, out, "sso_start_url", "empty fields are left out")

	// The export is readable by the config parser
	m, err := NewProfileManagerFromReaders(&buf, nil)
	require.NoError(t, err)

	got, ok := m.GetProfile("dev")
	require.True(t, ok)
	assert.Equal(t, dev.RoleARN, got.RoleARN)
	assert.Equal(t, dev.SourceProfile, got.SourceProfile)
	assert.Equal(t, dev.RoleSessionName, got.RoleSessionName)
	assert.Equal(t, pkgtypes.ProfileTypeAssumeRole, got.Type)
	assert.True(t, got.IsValid)

	got, _ = m.GetProfile("default")
	assert.Equal(t, "eu-west-1", got.Region)
}

func TestExportINI_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportINI(&buf))
	assert.Empty(t, buf.String())
}

func TestExportINI_CommentCharactersRoundTrip(t *testing.T) {
	sso := pkgtypes.AWSProfile{
		Name:         "sso",
		SSOStartURL:  "https://x.awsapps.com/start#/",
		SSORegion:    "us-east-1",
		SSOAccountID: "123456789012",
		SSORoleName:  "Read;Only",
	}

	var buf bytes.Buffer
	require.NoError(t, ExportINI(&buf, sso))
	assert.NotContains(t, buf.String(), "`")

	sections, err := ParseSections(&buf, ConfigFile)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	startURL, _ := sections[0].Lookup(keySSOStartURL)
	assert.Equal(t, sso.SSOStartURL, startURL)
	roleName, _ := sections[0].Lookup(keySSORoleName)
	assert.Equal(t, sso.SSORoleName, roleName)
}

func TestExportINI_RejectsQuotedValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "backtick", value: "role`name"},
		{name: "newline", value: "a\nb"},
		{name: "surrounding space", value: " padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := ExportINI(&buf, pkgtypes.AWSProfile{Name: "dev", RoleSessionName: tt.value})
			assert.ErrorIs(t, err, ErrUnexportableValue)
		})
	}
}
