package services

import (
	"errors"

	"github.com/soleworks/soleworks-api/models"
)

// ErrUnknownModelType is returned when a model type is not part of the catalog
var ErrUnknownModelType = errors.New("unknown model type")

// Catalog is the product schema registry: it maps a model type to its fixed
// set of layer slot names and holds the material vocabulary shared by all
// model types. It is configuration data, immutable after startup.
type Catalog struct {
	slots       map[string][]string
	materials   []string
	materialSet map[string]bool
}

// NewCatalog builds the registry for the current product line
func NewCatalog() *Catalog {
	c := &Catalog{
		slots: map[string][]string{
			models.ModelTypeSneaker: {"inside", "laces", "outside1", "outside2", "sole1", "sole2"},
			models.ModelTypeHeel:    {"Object_2", "Object_3", "Object_4", "Object_5"},
		},
		materials: []string{
			"none selected",
			"army",
			"crocodile",
			"glitter",
			"leather",
			"leopard",
			"blocked",
			"zebra",
			"flower",
			"pizza",
		},
	}

	c.materialSet = make(map[string]bool, len(c.materials))
	for _, m := range c.materials {
		c.materialSet[m] = true
	}
	return c
}

// SlotsFor returns the ordered slot names for a model type
func (c *Catalog) SlotsFor(modelType string) ([]string, error) {
	slots, ok := c.slots[modelType]
	if !ok {
		return nil, ErrUnknownModelType
	}
	return slots, nil
}

// MaterialDomain returns the enumerated material vocabulary
func (c *Catalog) MaterialDomain() []string {
	return c.materials
}

// IsValidMaterial reports whether material is in the vocabulary
func (c *Catalog) IsValidMaterial(material string) bool {
	return c.materialSet[material]
}
