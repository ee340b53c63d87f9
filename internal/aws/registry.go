package aws

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// Registry owns the merged name -> profile mapping built from the two shared AWS files
type Registry struct {
	profiles map[string]*pkgtypes.AWSProfile
	fs       afero.Fs
	logger   *zap.SugaredLogger
}

// NewRegistry creates an empty registry reading files through fsys
func NewRegistry(fsys afero.Fs, logger *zap.SugaredLogger) *Registry {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Registry{
		profiles: make(map[string]*pkgtypes.AWSProfile),
		fs:       fsys,
		logger:   logger,
	}
}

// Load merges the credentials file and then the config file into the registry.
// Missing files are skipped. The default profile is inserted before either file is read,
// so it is present even when reading fails.
func (r *Registry) Load(configPath, credentialsPath string) error {
	r.ensureDefault()

	if err := r.mergeFile(credentialsPath, CredentialsFile); err != nil {
		return err
	}
	return r.mergeFile(configPath, ConfigFile)
}

// LoadReaders is Load for content that was already read by the caller. A nil reader is
// treated like a missing file.
func (r *Registry) LoadReaders(config, credentials io.Reader) error {
	r.ensureDefault()

	if credentials != nil {
		if err := r.mergeReader(credentials, CredentialsFile, "<credentials>"); err != nil {
			return err
		}
	}
	if config != nil {
		if err := r.mergeReader(config, ConfigFile, "<config>"); err != nil {
			return err
		}
	}
	return nil
}

// Clear drops every profile, including default
func (r *Registry) Clear() {
	r.profiles = make(map[string]*pkgtypes.AWSProfile)
}

// Get returns the profile with the given name
func (r *Registry) Get(name string) (*pkgtypes.AWSProfile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Len returns the number of profiles
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Names returns all profile names sorted lexicographically
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ensureDefault() {
	if _, ok := r.profiles[pkgtypes.DefaultProfileName]; !ok {
		r.profiles[pkgtypes.DefaultProfileName] = pkgtypes.NewAWSProfile(pkgtypes.DefaultProfileName)
	}
}

func (r *Registry) mergeFile(path string, kind FileKind) error {
	if path == "" {
		return nil
	}

	file, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugw("AWS shared file not found, skipping", "kind", kind.String(), "path", path)
			return nil
		}
		return fmt.Errorf("failed to open AWS %s file %s: %w", kind, path, err)
	}
	defer file.Close()

	return r.mergeReader(file, kind, path)
}

func (r *Registry) mergeReader(rd io.Reader, kind FileKind, source string) error {
	sections, err := ParseSections(rd, kind)
	if err != nil {
		return fmt.Errorf("failed to read AWS %s file %s: %w", kind, source, err)
	}

	merged := 0
	for _, s := range sections {
		if s.Kind != SectionProfile {
			continue
		}
		r.apply(r.getOrCreate(s.Name), s, kind)
		merged++
	}

	r.logger.Debugw("merged AWS shared file",
		"kind", kind.String(),
		"source", source,
		"sections", len(sections),
		"profiles", merged,
	)
	return nil
}

func (r *Registry) getOrCreate(name string) *pkgtypes.AWSProfile {
	if p, ok := r.profiles[name]; ok {
		return p
	}
	p := pkgtypes.NewAWSProfile(name)
	r.profiles[name] = p
	return p
}

func (r *Registry) apply(p *pkgtypes.AWSProfile, s Section, kind FileKind) {
	if kind == CredentialsFile {
		// Both halves of the key pair must sit in the same section
		if s.Has(keyAccessKeyID) && s.Has(keySecretAccessKey) {
			p.HasStaticCredentials = true
		}
		return
	}

	for _, kv := range s.Keys {
		switch kv.Key {
		case keyRegion:
			p.Region = kv.Value
		case keySourceProfile:
			p.SourceProfile = kv.Value
		case keyRoleARN:
			p.RoleARN = kv.Value
		case keySSOStartURL:
			p.SSOStartURL = kv.Value
		case keySSORegion:
			p.SSORegion = kv.Value
		case keySSOAccountID:
			p.SSOAccountID = kv.Value
		case keySSORoleName:
			p.SSORoleName = kv.Value
		case keySSOSession:
			p.SSOSession = kv.Value
		case keyExternalID:
			p.ExternalID = kv.Value
		case keyMFASerial:
			p.MFASerial = kv.Value
		case keyRoleSessionName:
			p.RoleSessionName = kv.Value
		case keyCredentialSource:
			p.CredentialSource = kv.Value
		}
		markBlank(p, kv)
	}
}

// markBlank records whether the latest value of a key was empty
func markBlank(p *pkgtypes.AWSProfile, kv KeyValue) {
	if kv.Value != "" {
		delete(p.BlankKeys, kv.Key)
		return
	}
	if p.BlankKeys == nil {
		p.BlankKeys = make(map[string]bool)
	}
	p.BlankKeys[kv.Key] = true
}

// isSet reports whether key was configured for p, with a value or without one
func isSet(p *pkgtypes.AWSProfile, key, value string) bool {
	return value != "" || p.BlankKeys[key]
}
