package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog holds the static reference tables: shop stock, venues, gig formats
// and the name pools the hire screens draw candidates from. Built once at
// startup; lookups after that never miss unless the id itself is unknown.
type Catalog struct {
	Equipment []Equipment `yaml:"equipment"`
	Venues    []Venue     `yaml:"venues"`
	Formats   []GigFormat `yaml:"formats"`

	MusicianNames map[InstrumentType][]string `yaml:"musician_names"`
	CrewNames     map[Role][]string           `yaml:"crew_names"`

	equipmentByID map[string]Equipment
	venueByID     map[string]Venue
	formatByID    map[string]GigFormat
}

func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(blob []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(blob, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.buildIndexes(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) buildIndexes() error {
	c.equipmentByID = make(map[string]Equipment, len(c.Equipment))
	for _, e := range c.Equipment {
		if _, dup := c.equipmentByID[e.ID]; dup {
			return fmt.Errorf("catalog: duplicate equipment id %q", e.ID)
		}
		c.equipmentByID[e.ID] = e
	}
	c.venueByID = make(map[string]Venue, len(c.Venues))
	for _, v := range c.Venues {
		if _, dup := c.venueByID[v.ID]; dup {
			return fmt.Errorf("catalog: duplicate venue id %q", v.ID)
		}
		c.venueByID[v.ID] = v
	}
	c.formatByID = make(map[string]GigFormat, len(c.Formats))
	for _, f := range c.Formats {
		if _, dup := c.formatByID[f.ID]; dup {
			return fmt.Errorf("catalog: duplicate format id %q", f.ID)
		}
		c.formatByID[f.ID] = f
	}
	return nil
}

func (c *Catalog) validate() error {
	for _, e := range c.Equipment {
		if e.ID == "" || e.Name == "" {
			return fmt.Errorf("catalog: equipment entry missing id or name")
		}
		if e.Quality < 0 || e.Quality > 100 {
			return fmt.Errorf("catalog: equipment %q quality %d out of range", e.ID, e.Quality)
		}
		if e.Price < 0 {
			return fmt.Errorf("catalog: equipment %q has negative price", e.ID)
		}
	}
	for _, v := range c.Venues {
		if v.Capacity <= 0 {
			return fmt.Errorf("catalog: venue %q has no capacity", v.ID)
		}
		for _, req := range v.RequiredEquipment {
			if _, ok := c.equipmentByID[req]; !ok {
				return fmt.Errorf("catalog: venue %q requires unknown equipment %q", v.ID, req)
			}
		}
	}
	for _, f := range c.Formats {
		if f.PayMultiplier <= 0 || f.FameMultiplier <= 0 {
			return fmt.Errorf("catalog: format %q has non-positive multiplier", f.ID)
		}
		if f.MinSongs < 1 {
			return fmt.Errorf("catalog: format %q must require at least one song", f.ID)
		}
	}
	for _, inst := range AllInstruments() {
		if len(c.MusicianNames[inst]) == 0 {
			return fmt.Errorf("catalog: no musician names for %s", inst)
		}
	}
	for _, role := range []Role{RoleManager, RoleSoundEngineer, RoleTech} {
		if len(c.CrewNames[role]) == 0 {
			return fmt.Errorf("catalog: no crew names for %s", role)
		}
	}
	return nil
}

func (c *Catalog) EquipmentByID(id string) (Equipment, bool) {
	e, ok := c.equipmentByID[id]
	return e, ok
}

func (c *Catalog) VenueByID(id string) (Venue, bool) {
	v, ok := c.venueByID[id]
	return v, ok
}

func (c *Catalog) FormatByID(id string) (GigFormat, bool) {
	f, ok := c.formatByID[id]
	return f, ok
}

// StarterEquipment is everything the band owns on day one: the free junk.
func (c *Catalog) StarterEquipment() []Equipment {
	out := make([]Equipment, 0, 8)
	for _, e := range c.Equipment {
		if e.Price == 0 {
			out = append(out, e)
		}
	}
	return out
}
