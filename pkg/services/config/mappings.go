package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
)

// DefaultProfile is the mapping profile used when none is requested.
const DefaultProfile = "default"

// DefaultMapping is the built-in profile matching the column labels the
// point-of-sale system puts on its sales-activity export.
func DefaultMapping() domain.HeaderMapping {
	return domain.HeaderMapping{
		Name:   DefaultProfile,
		Staff:  []string{"Staff Customer"},
		Device: []string{"Device Orders Report"},
		Base:   []string{"Base (Including Disc.)"},
	}
}

// Registry resolves header mapping profiles. Profiles come from an INI file
// with one section per profile and pipe-separated label variants:
//
//	[legacy]
//	staff  = Server Name | Staff Customer
//	device = Device Orders Report
//	base   = Base (Including Disc.)
//
// The built-in default profile is always available unless the file overrides
// a section of the same name.
type Registry interface {
	Profiles(ctx context.Context) ([]string, error)
	Mapping(ctx context.Context, profile string) (domain.HeaderMapping, error)
}

type mappingRegistry struct {
	cfg *ini.File
}

// NewRegistry loads profiles from the INI file at path on top of the
// built-in default.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &mappingRegistry{cfg: cfg}, nil
}

// NewDefaultRegistry serves only the built-in default profile.
func NewDefaultRegistry() Registry {
	return &mappingRegistry{}
}

func (mr *mappingRegistry) Profiles(_ context.Context) ([]string, error) {
	profiles := []string{DefaultProfile}
	if mr.cfg == nil {
		return profiles, nil
	}
	for _, section := range mr.cfg.Sections() {
		if len(section.Keys()) == 0 || section.Name() == DefaultProfile {
			continue
		}
		profiles = append(profiles, section.Name())
	}
	return profiles, nil
}

func (mr *mappingRegistry) Mapping(_ context.Context, profile string) (domain.HeaderMapping, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	if mr.cfg != nil {
		if section, err := mr.cfg.GetSection(profile); err == nil && len(section.Keys()) > 0 {
			return mappingFromSection(profile, section)
		}
	}
	if profile == DefaultProfile {
		return DefaultMapping(), nil
	}
	return domain.HeaderMapping{}, fmt.Errorf("mapping profile %q not found", profile)
}

func mappingFromSection(profile string, section *ini.Section) (domain.HeaderMapping, error) {
	m := domain.HeaderMapping{
		Name:   profile,
		Staff:  section.Key("staff").Strings("|"),
		Device: section.Key("device").Strings("|"),
		Base:   section.Key("base").Strings("|"),
	}
	if len(m.Staff) == 0 || len(m.Device) == 0 || len(m.Base) == 0 {
		return domain.HeaderMapping{}, fmt.Errorf("mapping profile %q must define staff, device and base", profile)
	}
	return m, nil
}
