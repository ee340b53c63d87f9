package aws

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// ErrUnexportableValue is returned for values an AWS config file cannot hold unquoted
var ErrUnexportableValue = errors.New("value cannot be written to an AWS config file")

// ExportINI writes profiles back out as ~/.aws/config sections. Static credentials are
// never written since the key material is not kept. Values are written verbatim: AWS
// config files have no quoting, so "#" and ";" inside a value stay as they are.
func ExportINI(w io.Writer, profiles ...pkgtypes.AWSProfile) error {
	file := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})

	for _, p := range profiles {
		section, err := file.NewSection(configSectionName(p.Name))
		if err != nil {
			return fmt.Errorf("failed to create section for profile %s: %w", p.Name, err)
		}

		for _, kv := range configKeys(p) {
			if kv.Value == "" {
				continue
			}
			if err := checkExportable(kv.Value); err != nil {
				return fmt.Errorf("profile %s key %s: %w", p.Name, kv.Key, err)
			}
			if _, err := section.NewKey(kv.Key, kv.Value); err != nil {
				return fmt.Errorf("failed to write %s for profile %s: %w", kv.Key, p.Name, err)
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	return nil
}

// checkExportable rejects values ini.v1 would wrap in quotes, which the AWS parser
// would then read back as part of the value
func checkExportable(value string) error {
	if strings.ContainsAny(value, "\n`") || strings.TrimSpace(value) != value {
		return fmt.Errorf("%w: %q", ErrUnexportableValue, value)
	}
	return nil
}

func configSectionName(name string) string {
	if name == pkgtypes.DefaultProfileName {
		return name
	}
	return "profile " + name
}

func configKeys(p pkgtypes.AWSProfile) []KeyValue {
	return []KeyValue{
		{keyRegion, p.Region},
		{keySourceProfile, p.SourceProfile},
		{keyRoleARN, p.RoleARN},
		{keyCredentialSource, p.CredentialSource},
		{keyExternalID, p.ExternalID},
		{keyMFASerial, p.MFASerial},
		{keyRoleSessionName, p.RoleSessionName},
		{keySSOSession, p.SSOSession},
		{keySSOStartURL, p.SSOStartURL},
		{keySSORegion, p.SSORegion},
		{keySSOAccountID, p.SSOAccountID},
		{keySSORoleName, p.SSORoleName},
	}
}
