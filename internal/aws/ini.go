package aws

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// FileKind selects the header and key rules of one of the two shared AWS files
type FileKind int

const (
	// ConfigFile is ~/.aws/config: [default], [profile NAME], [sso-session NAME]
	ConfigFile FileKind = iota
	// CredentialsFile is ~/.aws/credentials: [NAME]
	CredentialsFile
)

func (k FileKind) String() string {
	if k == CredentialsFile {
		return "credentials"
	}
	return "config"
}

// SectionKind separates profile sections from sections the registry ignores
type SectionKind int

const (
	SectionProfile SectionKind = iota
	SectionSSOSession
	SectionOther
)

// KeyValue is a single recognized key of a section
type KeyValue struct {
	Key   string
	Value string
}

// Section is one [header] block and its recognized keys, in file order
type Section struct {
	Kind SectionKind
	Name string
	Keys []KeyValue
}

// Lookup returns the last value set for key in the section
func (s Section) Lookup(key string) (string, bool) {
	for i := len(s.Keys) - 1; i >= 0; i-- {
		if s.Keys[i].Key == key {
			return s.Keys[i].Value, true
		}
	}
	return "", false
}

// Has reports whether key appears in the section
func (s Section) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Keys the registry understands
const (
	keyRegion           = "region"
	keySourceProfile    = "source_profile"
	keyRoleARN          = "role_arn"
	keySSOStartURL      = "sso_start_url"
	keySSORegion        = "sso_region"
	keySSOAccountID     = "sso_account_id"
	keySSORoleName      = "sso_role_name"
	keySSOSession       = "sso_session"
	keyExternalID       = "external_id"
	keyMFASerial        = "mfa_serial"
	keyRoleSessionName  = "role_session_name"
	keyCredentialSource = "credential_source"

	keyAccessKeyID     = "aws_access_key_id"
	keySecretAccessKey = "aws_secret_access_key"
)

var recognizedKeys = map[FileKind]map[string]bool{
	ConfigFile: {
		keyRegion:           true,
		keySourceProfile:    true,
		keyRoleARN:          true,
		keySSOStartURL:      true,
		keySSORegion:        true,
		keySSOAccountID:     true,
		keySSORoleName:      true,
		keySSOSession:       true,
		keyExternalID:       true,
		keyMFASerial:        true,
		keyRoleSessionName:  true,
		keyCredentialSource: true,
	},
	CredentialsFile: {
		keyAccessKeyID:     true,
		keySecretAccessKey: true,
	},
}

// ParseSections reads an AWS INI-style file into its sections.
// Comments, blank lines and malformed lines are skipped; only a read failure is an error.
// Lines have no length limit. Values of credentials file keys are dropped, only their
// presence is reported.
func ParseSections(r io.Reader, kind FileKind) ([]Section, error) {
	p := sectionParser{keys: recognizedKeys[kind], kind: kind}

	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			p.parseLine(strings.TrimRight(raw, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return p.sections, nil
}

type sectionParser struct {
	kind     FileKind
	keys     map[string]bool
	sections []Section
	// nested is set after a key with an empty value, which opens an indented sub-property block
	nested bool
}

func (p *sectionParser) parseLine(raw string) {
	line := strings.TrimSpace(raw)

	// Skip empty lines and comments
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
		return
	}

	// Section header
	if strings.HasPrefix(line, "[") {
		if strings.HasSuffix(line, "]") {
			p.sections = append(p.sections, parseHeader(line[1:len(line)-1], p.kind))
			p.nested = false
		}
		return
	}

	if len(p.sections) == 0 {
		return
	}

	if p.nested && unicode.IsSpace(rune(raw[0])) {
		return
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return
	}
	p.nested = value == ""

	if !p.keys[key] {
		return
	}
	if p.kind == CredentialsFile {
		value = ""
	}

	current := &p.sections[len(p.sections)-1]
	current.Keys = append(current.Keys, KeyValue{Key: key, Value: value})
}

func parseHeader(header string, kind FileKind) Section {
	name := strings.TrimSpace(header)
	if name == "" {
		return Section{Kind: SectionOther}
	}

	if kind == CredentialsFile {
		return Section{Kind: SectionProfile, Name: name}
	}

	if name == pkgtypes.DefaultProfileName {
		return Section{Kind: SectionProfile, Name: name}
	}
	if profile, ok := cutKeyword(name, "profile"); ok {
		return Section{Kind: SectionProfile, Name: profile}
	}
	if session, ok := cutKeyword(name, "sso-session"); ok {
		return Section{Kind: SectionSSOSession, Name: session}
	}

	return Section{Kind: SectionOther, Name: name}
}

// cutKeyword splits "keyword NAME" headers, requiring whitespace after the keyword
func cutKeyword(header, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(header, keyword)
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	name := strings.TrimSpace(rest)
	return name, name != ""
}
