package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

var defaultSeedSet = mustParseSeed(defaultSeedYAML)

// SeedGroup is a named block of related seed entries, e.g. "auth".
type SeedGroup struct {
	Name     string    `yaml:"name"`
	Title    string    `yaml:"title,omitempty"`
	Messages []Message `yaml:"messages"`
}

// SeedSet is the initial population of a store, as read from a seed file.
type SeedSet struct {
	Groups []SeedGroup `yaml:"groups"`
}

// Messages flattens the set in file order.
func (s SeedSet) Messages() []Message {
	var out []Message
	for _, g := range s.Groups {
		out = append(out, g.Messages...)
	}
	return out
}

// Group returns the group called name.
func (s SeedSet) Group(name string) (SeedGroup, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return SeedGroup{}, false
}

// ParseSeed decodes a YAML seed file and checks that every entry is complete
// and every code appears once.
func ParseSeed(data []byte) (SeedSet, error) {
	var set SeedSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return SeedSet{}, fmt.Errorf("%w: decode: %w", ErrInvalidSeed, err)
	}
	if err := set.validate(); err != nil {
		return SeedSet{}, err
	}
	return set, nil
}

// LoadSeedFile reads and parses the seed file at path.
func LoadSeedFile(path string) (SeedSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedSet{}, fmt.Errorf("read seed file: %w", err)
	}
	set, err := ParseSeed(data)
	if err != nil {
		return SeedSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// DefaultSeedSet returns the embedded seed set.
func DefaultSeedSet() SeedSet {
	groups := make([]SeedGroup, len(defaultSeedSet.Groups))
	for i, g := range defaultSeedSet.Groups {
		g.Messages = append([]Message(nil), g.Messages...)
		groups[i] = g
	}
	return SeedSet{Groups: groups}
}

// DefaultSeed returns the embedded seed entries.
func DefaultSeed() []Message {
	return defaultSeedSet.Messages()
}

func (s SeedSet) validate() error {
	if len(s.Groups) == 0 {
		return fmt.Errorf("%w: no groups", ErrInvalidSeed)
	}
	seen := map[string]string{}
	for gi, g := range s.Groups {
		if g.Name == "" {
			return fmt.Errorf("%w: group %d has no name", ErrInvalidSeed, gi)
		}
		for mi, m := range g.Messages {
			switch {
			case m.Code == "":
				return fmt.Errorf("%w: group %q entry %d: code is empty", ErrInvalidSeed, g.Name, mi)
			case m.TechnicalDetail == "":
				return fmt.Errorf("%w: %s: technical is empty", ErrInvalidSeed, m.Code)
			case m.UserMessage == "":
				return fmt.Errorf("%w: %s: user is empty", ErrInvalidSeed, m.Code)
			case m.GeneralDescription == "":
				return fmt.Errorf("%w: %s: general is empty", ErrInvalidSeed, m.Code)
			}
			if prev, dup := seen[m.Code]; dup {
				return fmt.Errorf("%w: %s: duplicated (first seen in group %q)", ErrInvalidSeed, m.Code, prev)
			}
			seen[m.Code] = g.Name
		}
	}
	return nil
}

func mustParseSeed(data []byte) SeedSet {
	set, err := ParseSeed(data)
	if err != nil {
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return set
}
