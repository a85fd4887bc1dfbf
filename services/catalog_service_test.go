package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soleworks/soleworks-api/models"
)

func TestSlotsForSneaker(t *testing.T) {
	catalog := NewCatalog()

	slots, err := catalog.SlotsFor(models.ModelTypeSneaker)
	assert.NoError(t, err)
	assert.Equal(t, []string{"inside", "laces", "outside1", "outside2", "sole1", "sole2"}, slots,
		"Sneaker slots should be fixed and ordered")
}

func TestSlotsForHeel(t *testing.T) {
	catalog := NewCatalog()

	slots, err := catalog.SlotsFor(models.ModelTypeHeel)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Object_2", "Object_3", "Object_4", "Object_5"}, slots,
		"Heel slots should be fixed and ordered")
}

func TestSlotsForUnknownModelType(t *testing.T) {
	catalog := NewCatalog()

	tests := []string{"boot", "", "Sneaker", "HEEL"}
	for _, modelType := range tests {
		slots, err := catalog.SlotsFor(modelType)
		assert.ErrorIs(t, err, ErrUnknownModelType, "model type %q should be rejected", modelType)
		assert.Nil(t, slots)
	}
}

func TestMaterialDomain(t *testing.T) {
	catalog := NewCatalog()

	domain := catalog.MaterialDomain()
	assert.Len(t, domain, 10)
	assert.Contains(t, domain, "none selected")
	assert.Contains(t, domain, "pizza")
}

func TestIsValidMaterial(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		material string
		want     bool
	}{
		{"leather", true},
		{"zebra", true},
		{"none selected", true},
		{"denim", false},
		{"", false},
		{"Leather", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.IsValidMaterial(tt.material), "material %q", tt.material)
	}
}
