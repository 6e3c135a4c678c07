package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile is one backend connection from the ~/.opsatlas file: the base
// URL of the console backend and the API token used for every domain
// endpoint behind it.
type Profile struct {
	Name   string
	APIURL string
	Token  string
}

// Registry reads backend profiles from an ini file, one section per
// profile:
//
//	[production]
//	api_url = https://console.example.com
//	api_token = ...
type Registry struct {
	cfg *ini.File
}

func NewRegistry(path string) (*Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %q: %w", path, err)
	}
	return &Registry{cfg: cfg}, nil
}

func (r *Registry) Profiles() []string {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles
}

func (r *Registry) Get(name string) (Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}

	profile := Profile{
		Name:   name,
		APIURL: section.Key("api_url").String(),
		Token:  section.Key("api_token").String(),
	}
	if profile.APIURL == "" {
		return Profile{}, fmt.Errorf("profile %q has no api_url", name)
	}
	return profile, nil
}
