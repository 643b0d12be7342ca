package qosprofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/dds/core/dds"
)

// Profiles is a resolved, validated set of named QoS profiles.
type Profiles struct {
	byName map[string]dds.QoS
}

type document struct {
	Profiles map[string]rawProfile `yaml:"profiles"`
}

// rawProfile keeps every field optional so unset values can be inherited.
type rawProfile struct {
	Base        string `yaml:"base"`
	Reliability string `yaml:"reliability"`
	Durability  string `yaml:"durability"`
	History     string `yaml:"history"`
	Depth       *int   `yaml:"depth"`
	MaxSamples  *int   `yaml:"max_samples"`
}

// LoadFile reads profiles from a YAML file.
func LoadFile(path string) (*Profiles, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("qosprofile: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a YAML profile document. Unknown keys are rejected. A profile
// starts from its base profile when one is named, otherwise from
// dds.DefaultQoS, and overrides only the fields it sets.
func Load(r io.Reader) (*Profiles, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("qosprofile: decode: %w", err)
	}

	p := &Profiles{byName: make(map[string]dds.QoS, len(doc.Profiles))}
	for name := range doc.Profiles {
		if _, err := p.resolve(doc.Profiles, name, nil); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Profiles) resolve(raw map[string]rawProfile, name string, chain []string) (dds.QoS, error) {
	if q, ok := p.byName[name]; ok {
		return q, nil
	}
	if slices.Contains(chain, name) {
		return dds.QoS{}, fmt.Errorf("%w: %v -> %s", ErrBaseCycle, chain, name)
	}

	rp, ok := raw[name]
	if !ok {
		return dds.QoS{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}

	q := dds.DefaultQoS()
	if rp.Base != "" {
		base, err := p.resolve(raw, rp.Base, append(chain, name))
		if err != nil {
			return dds.QoS{}, err
		}
		q = base
	}

	if err := rp.apply(&q); err != nil {
		return dds.QoS{}, fmt.Errorf("%w %q: %w", ErrInvalidProfile, name, err)
	}
	if err := q.Validate(); err != nil {
		return dds.QoS{}, fmt.Errorf("%w %q: %w", ErrInvalidProfile, name, err)
	}

	p.byName[name] = q
	return q, nil
}

func (rp rawProfile) apply(q *dds.QoS) error {
	var errs []error

	if rp.Reliability != "" {
		k, err := dds.ParseReliabilityKind(rp.Reliability)
		errs = append(errs, err)
		q.Reliability = k
	}
	if rp.Durability != "" {
		k, err := dds.ParseDurabilityKind(rp.Durability)
		errs = append(errs, err)
		q.Durability = k
	}
	if rp.History != "" {
		k, err := dds.ParseHistoryKind(rp.History)
		errs = append(errs, err)
		q.History = k
	}
	if rp.Depth != nil {
		q.Depth = *rp.Depth
	}
	if rp.MaxSamples != nil {
		q.MaxSamples = *rp.MaxSamples
	}

	return errors.Join(errs...)
}

// Get returns the named profile.
func (p *Profiles) Get(name string) (dds.QoS, error) {
	q, ok := p.byName[name]
	if !ok {
		return dds.QoS{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return q, nil
}

// Names returns the profile names in sorted order.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of profiles.
func (p *Profiles) Len() int { return len(p.byName) }
