// Package catalog loads the fixed set of traits, statements and career lists.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"holland-test/internal/domain"
)

//go:embed traits.yaml
var embeddedTraits []byte

var ErrInvalidCatalog = errors.New("invalid trait catalog")

// Catalog is immutable once loaded.
type Catalog struct {
	traits []domain.Trait
	byCode map[domain.TraitCode]int
}

type document struct {
	Traits []domain.Trait `yaml:"traits"`
}

// Default parses the embedded catalog. The embedded document is validated by
// tests, so a failure here is a programming error.
func Default() *Catalog {
	c, err := Parse(embeddedTraits)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load returns the embedded catalog when path is empty, otherwise parses the file at path.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(embeddedTraits)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Traits) != len(domain.CanonicalOrder) {
		return nil, fmt.Errorf("%w: expected %d traits, got %d", ErrInvalidCatalog, len(domain.CanonicalOrder), len(doc.Traits))
	}

	c := &Catalog{
		traits: make([]domain.Trait, 0, len(doc.Traits)),
		byCode: make(map[domain.TraitCode]int, len(doc.Traits)),
	}
	for i, t := range doc.Traits {
		t.Code = domain.TraitCode(strings.ToUpper(strings.TrimSpace(string(t.Code))))
		if t.Code != domain.CanonicalOrder[i] {
			return nil, fmt.Errorf("%w: trait %d must be %q, got %q", ErrInvalidCatalog, i, domain.CanonicalOrder[i], t.Code)
		}
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: trait %s has no name", ErrInvalidCatalog, t.Code)
		}
		if len(t.Statements) != domain.StatementsPerTrait {
			return nil, fmt.Errorf("%w: trait %s needs %d statements, got %d", ErrInvalidCatalog, t.Code, domain.StatementsPerTrait, len(t.Statements))
		}
		for j, s := range t.Statements {
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("%w: trait %s statement %d is empty", ErrInvalidCatalog, t.Code, j)
			}
		}
		c.byCode[t.Code] = len(c.traits)
		c.traits = append(c.traits, t)
	}
	return c, nil
}

// Traits returns copies of the traits in catalog order.
func (c *Catalog) Traits() []domain.Trait {
	out := make([]domain.Trait, len(c.traits))
	for i, t := range c.traits {
		out[i] = cloneTrait(t)
	}
	return out
}

// Get looks up a trait by code.
func (c *Catalog) Get(code domain.TraitCode) (domain.Trait, bool) {
	idx, ok := c.byCode[code]
	if !ok {
		return domain.Trait{}, false
	}
	return cloneTrait(c.traits[idx]), true
}

// Order returns the trait codes in catalog order.
func (c *Catalog) Order() []domain.TraitCode {
	out := make([]domain.TraitCode, len(c.traits))
	for i, t := range c.traits {
		out[i] = t.Code
	}
	return out
}

func cloneTrait(t domain.Trait) domain.Trait {
	t.Careers = append([]string(nil), t.Careers...)
	t.Statements = append([]string(nil), t.Statements...)
	return t
}
