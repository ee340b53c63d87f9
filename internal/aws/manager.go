package aws

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

var (
	// ErrProfileNotFound is returned when a profile name is not in the registry
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfile is returned by callers that refuse to use an invalid profile
	ErrInvalidProfile = errors.New("profile is invalid")
)

// Paths locates the two shared AWS files. Either may be empty or point to a missing file.
type Paths struct {
	ConfigFile      string
	CredentialsFile string
}

// ProfileManager loads, classifies and validates AWS profiles and answers queries about them.
// It is not safe for concurrent use; callers must serialize access.
type ProfileManager struct {
	paths    Paths
	fs       afero.Fs
	logger   *zap.SugaredLogger
	registry *Registry
	current  string
}

// ManagerOption allows customizing the ProfileManager
type ManagerOption func(*ProfileManager)

// WithFs sets the filesystem the shared files are read from
func WithFs(fsys afero.Fs) ManagerOption {
	return func(m *ProfileManager) {
		m.fs = fsys
	}
}

// WithLogger sets the logger for load and validation events
func WithLogger(logger *zap.SugaredLogger) ManagerOption {
	return func(m *ProfileManager) {
		m.logger = logger
	}
}

// NewProfileManager creates a ProfileManager, loads both files and validates every profile.
// On a read error the returned manager still holds whatever was loaded, validated, so the
// caller can present it alongside the error.
func NewProfileManager(paths Paths, opts ...ManagerOption) (*ProfileManager, error) {
	m := newManager(paths, opts...)

	err := m.Load()
	m.ValidateAll()

	return m, err
}

// NewProfileManagerFromReaders is NewProfileManager for pre-read file content.
// A nil reader is treated like a missing file. Reload re-reads the manager's Paths.
func NewProfileManagerFromReaders(config, credentials io.Reader, opts ...ManagerOption) (*ProfileManager, error) {
	m := newManager(Paths{}, opts...)

	err := m.registry.LoadReaders(config, credentials)
	m.ValidateAll()

	return m, err
}

func newManager(paths Paths, opts ...ManagerOption) *ProfileManager {
	m := &ProfileManager{paths: paths}
	for _, opt := range opts {
		opt(m)
	}

	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.logger == nil {
		m.logger = zap.NewNop().Sugar()
	}
	m.registry = NewRegistry(m.fs, m.logger)

	return m
}

// Paths returns the shared file locations the manager reads
func (m *ProfileManager) Paths() Paths {
	return m.paths
}

// Load merges both files into the registry without classifying or validating.
// On a read failure the default profile is still present.
func (m *ProfileManager) Load() error {
	return m.registry.Load(m.paths.ConfigFile, m.paths.CredentialsFile)
}

// Reload rebuilds the registry from the files and validates it. The swap is atomic:
// if either file cannot be read the previous profiles are kept and the error returned.
// The current profile stays selected only if it still exists.
func (m *ProfileManager) Reload() error {
	next := NewRegistry(m.fs, m.logger)
	if err := next.Load(m.paths.ConfigFile, m.paths.CredentialsFile); err != nil {
		m.logger.Warnw("reload failed, keeping previous profiles", "error", err)
		return fmt.Errorf("failed to reload AWS profiles: %w", err)
	}

	validateRegistry(next, m.logger)
	m.registry = next

	if m.current != "" {
		if _, ok := next.Get(m.current); !ok {
			m.logger.Infow("current profile no longer exists after reload", "profile", m.current)
			m.current = ""
		}
	}

	return nil
}

// ValidateAll classifies every profile and then validates every profile. Classification
// must finish first because chain validation inspects the type of referenced profiles.
func (m *ProfileManager) ValidateAll() {
	validateRegistry(m.registry, m.logger)
}

func validateRegistry(registry *Registry, logger *zap.SugaredLogger) {
	names := registry.Names()

	for _, name := range names {
		p, _ := registry.Get(name)
		p.Type = Classify(p)
	}

	validator := NewValidator(registry)
	invalid := 0
	for _, name := range names {
		p, _ := registry.Get(name)
		p.IsValid, p.ErrorMessage = validator.Validate(p)
		if !p.IsValid {
			invalid++
			logger.Debugw("invalid AWS profile", "profile", p.Name, "type", p.Type.String(), "reason", p.ErrorMessage)
		}
	}

	logger.Infow("validated AWS profiles", "total", len(names), "valid", len(names)-invalid, "invalid", invalid)
}

// ProfileNames returns all profile names sorted, with "default" first
func (m *ProfileManager) ProfileNames() []string {
	names := m.registry.Names()

	for i, name := range names {
		if name == pkgtypes.DefaultProfileName {
			copy(names[1:i+1], names[:i])
			names[0] = pkgtypes.DefaultProfileName
			break
		}
	}

	return names
}

// GetProfile returns a copy of the named profile
func (m *ProfileManager) GetProfile(name string) (pkgtypes.AWSProfile, bool) {
	p, ok := m.registry.Get(name)
	if !ok {
		return pkgtypes.AWSProfile{}, false
	}
	return *p, true
}

// Profiles returns copies of all profiles in ProfileNames order
func (m *ProfileManager) Profiles() []pkgtypes.AWSProfile {
	return m.filter(func(pkgtypes.AWSProfile) bool { return true })
}

// ValidProfiles returns the profiles that passed validation, in ProfileNames order
func (m *ProfileManager) ValidProfiles() []pkgtypes.AWSProfile {
	return m.filter(func(p pkgtypes.AWSProfile) bool { return p.IsValid })
}

// InvalidProfiles returns the profiles that failed validation, in ProfileNames order
func (m *ProfileManager) InvalidProfiles() []pkgtypes.AWSProfile {
	return m.filter(func(p pkgtypes.AWSProfile) bool { return !p.IsValid })
}

// ValidProfileCount returns the number of valid profiles
func (m *ProfileManager) ValidProfileCount() int {
	count := 0
	for _, name := range m.registry.Names() {
		if p, _ := m.registry.Get(name); p.IsValid {
			count++
		}
	}
	return count
}

func (m *ProfileManager) filter(keep func(pkgtypes.AWSProfile) bool) []pkgtypes.AWSProfile {
	var profiles []pkgtypes.AWSProfile
	for _, name := range m.ProfileNames() {
		p, _ := m.registry.Get(name)
		if keep(*p) {
			profiles = append(profiles, *p)
		}
	}
	return profiles
}

// SetCurrentProfile selects a profile by name
func (m *ProfileManager) SetCurrentProfile(name string) error {
	if _, ok := m.registry.Get(name); !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	m.current = name
	return nil
}

// CurrentProfile returns the selected profile name, or "" if none is selected
func (m *ProfileManager) CurrentProfile() string {
	return m.current
}
