package models_test

import (
	"testing"

	"github.com/chandragiri4649/milksync-sub000/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePackPrice(t *testing.T) {
	t.Run("direct pack price wins", func(t *testing.T) {
		p := &models.Product{
			PricePerPack: decimal.NewFromInt(50),
			PricePerUnit: decimal.NewFromInt(10),
			UnitsPerPack: 4,
		}
		assert.True(t, p.EffectivePackPrice().Equal(decimal.NewFromInt(50)))
	})

	t.Run("derived from sub-unit price", func(t *testing.T) {
		p := &models.Product{PricePerUnit: decimal.NewFromFloat(4.75), UnitsPerPack: 10}
		assert.True(t, p.EffectivePackPrice().Equal(decimal.NewFromFloat(47.5)))
		assert.True(t, p.HasDerivablePrice())
	})

	t.Run("derived price rounds to paise", func(t *testing.T) {
		p := &models.Product{PricePerUnit: decimal.NewFromFloat(3.333), UnitsPerPack: 3}
		assert.True(t, p.EffectivePackPrice().Equal(decimal.NewFromFloat(10.00)))
	})

	t.Run("no price information", func(t *testing.T) {
		p := &models.Product{}
		assert.True(t, p.EffectivePackPrice().IsZero())
		assert.False(t, p.HasDerivablePrice())
	})

	t.Run("unit price without pack size is not derivable", func(t *testing.T) {
		p := &models.Product{PricePerUnit: decimal.NewFromInt(5)}
		assert.False(t, p.HasDerivablePrice())
	})
}
