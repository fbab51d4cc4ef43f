// Package catalog holds the weapon and spell reference data consumed during
// resolution. The SRD subset is embedded; a YAML file can replace or extend
// it.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"log"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/srd.yaml
var srdYAML []byte

// Document is the YAML layout of a catalog file
type Document struct {
	Weapons []equipment.Weapon `yaml:"weapons"`
	Spells  []magic.Spell      `yaml:"spells"`
}

// Catalog is a read-mostly index of reference data, safe for concurrent use
type Catalog struct {
	mu      sync.RWMutex
	weapons map[string]*equipment.Weapon
	spells  map[string]*magic.Spell
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		weapons: make(map[string]*equipment.Weapon),
		spells:  make(map[string]*magic.Spell),
	}
}

// Default returns the embedded SRD catalog
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(srdYAML))
}

// Load decodes a catalog document
func Load(r io.Reader) (*Catalog, error) {
	c := New()
	if err := c.Merge(r); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadWithOverride returns the embedded catalog, with entries from the file
// at path replacing or adding to it. An empty path means no override.
func LoadWithOverride(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to open catalog %s", path)
	}
	defer f.Close()

	if err := c.Merge(f); err != nil {
		return nil, dnderr.Wrapf(err, "failed to load catalog %s", path)
	}
	log.Printf("Catalog: loaded override %s (%d weapons, %d spells)", path, len(c.Weapons()), len(c.Spells()))
	return c, nil
}

// Merge decodes a document and adds its entries, replacing ones with the
// same key
func (c *Catalog) Merge(r io.Reader) error {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid catalog document")
	}

	for i := range doc.Weapons {
		if err := c.AddWeapon(doc.Weapons[i]); err != nil {
			return err
		}
	}
	for i := range doc.Spells {
		if err := c.AddSpell(doc.Spells[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddWeapon validates and stores a weapon
func (c *Catalog) AddWeapon(w equipment.Weapon) error {
	if w.Key == "" {
		return dnderr.InvalidArgumentf("weapon %q has no key", w.Name)
	}
	if w.DamageDice != "" {
		if _, err := dice.ParseExpression(w.DamageDice); err != nil {
			return dnderr.Wrapf(err, "weapon %s", w.Key)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.weapons[w.Key] = &w
	return nil
}

// AddSpell validates and stores a spell
func (c *Catalog) AddSpell(s magic.Spell) error {
	if s.Key == "" {
		return dnderr.InvalidArgumentf("spell %q has no key", s.Name)
	}
	if s.Level < 0 || s.Level > 9 {
		return dnderr.InvalidArgumentf("spell %s has level %d", s.Key, s.Level)
	}
	for i, t := range s.Templates {
		if t.Kind < 0 || t.Kind >= magic.EffectKindCount {
			return dnderr.InvalidArgumentf("spell %s template %d has unknown kind", s.Key, i)
		}
		for _, expr := range []string{t.BaseDice, t.DicePerLevel} {
			if expr == "" {
				continue
			}
			if _, err := dice.ParseExpression(expr); err != nil {
				return dnderr.Wrapf(err, "spell %s template %d", s.Key, i)
			}
		}
		if t.Kind == magic.EffectSummon && t.Summon == nil {
			return dnderr.InvalidArgumentf("spell %s summon template has no creature", s.Key)
		}
	}

	s.Templates = slices.Clone(s.Templates)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spells[s.Key] = &s
	return nil
}

// Weapon looks up a weapon by key. The returned value is a copy.
func (c *Catalog) Weapon(key string) (*equipment.Weapon, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.weapons[key]
	if !ok {
		return nil, dnderr.NotFoundf("weapon %s not found", key)
	}
	out := *w
	out.Properties = slices.Clone(w.Properties)
	return &out, nil
}

// Spell looks up a spell by key. The returned value is a copy.
func (c *Catalog) Spell(key string) (*magic.Spell, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.spells[key]
	if !ok {
		return nil, dnderr.NotFoundf("spell %s not found", key)
	}
	out := *s
	out.Templates = slices.Clone(s.Templates)
	return &out, nil
}

// Weapons lists weapon keys in order
func (c *Catalog) Weapons() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.weapons))
	for k := range c.weapons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spells lists spell keys in order
func (c *Catalog) Spells() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.spells))
	for k := range c.spells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Export writes the catalog as a YAML document
func (c *Catalog) Export(w io.Writer) error {
	var doc Document
	for _, key := range c.Weapons() {
		weapon, _ := c.Weapon(key)
		doc.Weapons = append(doc.Weapons, *weapon)
	}
	for _, key := range c.Spells() {
		spell, _ := c.Spell(key)
		doc.Spells = append(doc.Spells, *spell)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return dnderr.Wrap(err, "failed to encode catalog")
	}
	return enc.Close()
}
