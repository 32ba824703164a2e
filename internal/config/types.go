package config

import (
	"github.com/zaidlab/folio/internal/cards"
	"github.com/zaidlab/folio/internal/particles"
)

// Content is the full portfolio document: profile copy, card records and tuning.
type Content struct {
	Version  string    `yaml:"version" validate:"required,semver"`
	Profile  Profile   `yaml:"profile"`
	Projects []Project `yaml:"projects" validate:"omitempty,dive"`
	Services []Service `yaml:"services" validate:"omitempty,dive"`
	Contact  Contact   `yaml:"contact"`
	Settings Settings  `yaml:"settings,omitempty"`
}

// Profile is the hero and about copy.
type Profile struct {
	Name     string   `yaml:"name" validate:"required,max=80"`
	Headline string   `yaml:"headline" validate:"required"`
	Intro    string   `yaml:"intro,omitempty"`
	About    []string `yaml:"about,omitempty"`
	CTA      string   `yaml:"cta,omitempty"`
}

// Link is an outbound URL.
type Link struct {
	Label string `yaml:"label" validate:"required"`
	URL   string `yaml:"url" validate:"required,link_url"`
}

// Project is a portfolio project card.
type Project struct {
	Title       string   `yaml:"title" validate:"required,max=80"`
	Summary     string   `yaml:"summary" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Image       string   `yaml:"image,omitempty" validate:"omitempty,url"`
	URL         string   `yaml:"url,omitempty" validate:"omitempty,link_url"`
	Tags        []string `yaml:"tags,omitempty"`
	Links       []Link   `yaml:"links,omitempty" validate:"omitempty,dive"`
}

// Service is an offered service card.
type Service struct {
	Title       string `yaml:"title" validate:"required,max=80"`
	Summary     string `yaml:"summary" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Price       string `yaml:"price,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Estimate    bool   `yaml:"estimate,omitempty"`
	Links       []Link `yaml:"links,omitempty" validate:"omitempty,dive"`
}

// Contact is the contact section copy and its links.
type Contact struct {
	Blurb string `yaml:"blurb,omitempty"`
	Links []Link `yaml:"links,omitempty" validate:"omitempty,dive"`
}

// Settings tunes layout and motion. Zero values take defaults.
type Settings struct {
	ViewportThreshold int      `yaml:"viewport_threshold,omitempty" validate:"omitempty,min=20,max=400"`
	RevealThreshold   float64  `yaml:"reveal_threshold,omitempty" validate:"omitempty,gte=0,lt=1"`
	JumpThreshold     float64  `yaml:"jump_threshold,omitempty" validate:"omitempty,gt=0,lt=1"`
	HeaderThreshold   int      `yaml:"header_threshold,omitempty" validate:"omitempty,min=1"`
	FPS               int      `yaml:"fps,omitempty" validate:"omitempty,min=5,max=120"`
	UploadExtensions  []string `yaml:"upload_extensions,omitempty" validate:"omitempty,dive,startswith=."`
	Motion            Motion   `yaml:"motion,omitempty"`
}

// Motion overrides particle tuning.
type Motion struct {
	Particles       int     `yaml:"particles,omitempty" validate:"omitempty,min=1,max=500"`
	SpeedMax        float64 `yaml:"speed_max,omitempty" validate:"omitempty,gt=0"`
	Radius          float64 `yaml:"radius,omitempty" validate:"omitempty,gt=0,lte=100"`
	MaxStrength     float64 `yaml:"max_strength,omitempty" validate:"omitempty,gt=0,lte=1"`
	SpringFrequency float64 `yaml:"spring_frequency,omitempty" validate:"omitempty,gt=0"`
	SpringDamping   float64 `yaml:"spring_damping,omitempty" validate:"omitempty,gt=0"`
}

// ParticleConfig merges Motion overrides onto particles.DefaultConfig.
func (s Settings) ParticleConfig() particles.Config {
	cfg := particles.DefaultConfig()
	if s.Motion.Particles > 0 {
		cfg.Count = s.Motion.Particles
	}
	if s.Motion.SpeedMax > 0 {
		cfg.SpeedMax = s.Motion.SpeedMax
	}
	if s.Motion.Radius > 0 {
		cfg.Radius = s.Motion.Radius
	}
	if s.Motion.MaxStrength > 0 {
		cfg.MaxStrength = s.Motion.MaxStrength
	}
	if s.Motion.SpringFrequency > 0 {
		cfg.SpringFrequency = s.Motion.SpringFrequency
	}
	if s.Motion.SpringDamping > 0 {
		cfg.SpringDamping = s.Motion.SpringDamping
	}
	if s.FPS > 0 {
		cfg.FPS = s.FPS
	}
	return cfg
}

// ProjectCards converts projects into card records. A project URL becomes its first link.
func (c *Content) ProjectCards() []cards.Card {
	out := make([]cards.Card, 0, len(c.Projects))
	for _, p := range c.Projects {
		var links []cards.Link
		if p.URL != "" {
			links = append(links, cards.Link{Label: "Visit", URL: p.URL})
		}
		links = append(links, convertLinks(p.Links)...)
		out = append(out, cards.Card{
			Title:       p.Title,
			Summary:     p.Summary,
			Description: p.Description,
			Image:       p.Image,
			Tags:        append([]string(nil), p.Tags...),
			Links:       links,
		})
	}
	return out
}

// ServiceCards converts services into card records carrying price and estimate metadata.
func (c *Content) ServiceCards() []cards.Card {
	out := make([]cards.Card, 0, len(c.Services))
	for _, s := range c.Services {
		meta := map[string]string{}
		if s.Price != "" {
			meta["price"] = s.Price
		}
		if s.Icon != "" {
			meta["icon"] = s.Icon
		}
		if s.Estimate {
			meta["estimate"] = "true"
		}
		out = append(out, cards.Card{
			Title:       s.Title,
			Summary:     s.Summary,
			Description: s.Description,
			Links:       convertLinks(s.Links),
			Meta:        meta,
		})
	}
	return out
}

func convertLinks(in []Link) []cards.Link {
	out := make([]cards.Link, 0, len(in))
	for _, l := range in {
		out = append(out, cards.Link{Label: l.Label, URL: l.URL})
	}
	return out
}
