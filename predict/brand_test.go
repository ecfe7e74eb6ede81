package predict_test

import (
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrand_PredictBrand(t *testing.T) {
	t.Parallel()

	t.Run("exact case brand at start of text", func(t *testing.T) {
		t.Parallel()

		b := predict.NewBrand(prex.DefaultBrandThreshold)
		pred, ok := b.PredictBrand("Gucci leather shoulder bag")

		require.True(t, ok)
		assert.Equal(t, "Gucci", pred.Brand)
		assert.Equal(t, 1.0, pred.Confidence)
	})

	t.Run("attribution word raises confidence", func(t *testing.T) {
		t.Parallel()

		b := predict.NewBrand(prex.DefaultBrandThreshold)
		pred, ok := b.PredictBrand("scarf by chanel")

		require.True(t, ok)
		assert.Equal(t, "Chanel", pred.Brand)
		assert.InDelta(t, 0.85, pred.Confidence, 1e-9)
	})

	t.Run("multi-word brand", func(t *testing.T) {
		t.Parallel()

		b := predict.NewBrand(prex.DefaultBrandThreshold)
		pred, ok := b.PredictBrand("Tote from Louis Vuitton")

		require.True(t, ok)
		assert.Equal(t, "Louis Vuitton", pred.Brand)
		assert.InDelta(t, 0.95, pred.Confidence, 1e-9)
	})

	t.Run("abstains on unknown brand", func(t *testing.T) {
		t.Parallel()

		b := predict.NewBrand(prex.DefaultBrandThreshold)
		_, ok := b.PredictBrand("generic canvas tote")

		assert.False(t, ok)
	})

	t.Run("custom vocabulary replaces the default", func(t *testing.T) {
		t.Parallel()

		b := predict.NewBrand(prex.DefaultBrandThreshold, "Acme")

		pred, ok := b.PredictBrand("Acme rocket skates")
		require.True(t, ok)
		assert.Equal(t, "Acme", pred.Brand)

		_, ok = b.PredictBrand("Gucci loafers")
		assert.False(t, ok)
	})
}
