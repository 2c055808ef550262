package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarValidate(t *testing.T) {
	t.Run("valid close", func(t *testing.T) {
		bar := Bar{Close: 34100.50}
		assert.NoError(t, bar.Validate())
	})

	t.Run("NaN close", func(t *testing.T) {
		bar := Bar{Close: math.NaN()}
		err := bar.Validate()
		assert.ErrorIs(t, err, InvalidPriceDataErr)
	})

	t.Run("negative close", func(t *testing.T) {
		bar := Bar{Close: -1.0}
		err := bar.Validate()
		assert.ErrorIs(t, err, InvalidPriceDataErr)
	})

	t.Run("zero close", func(t *testing.T) {
		bar := Bar{Close: 0}
		assert.ErrorIs(t, bar.Validate(), InvalidPriceDataErr)
	})
}

func TestBarsLast(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		_, ok := Bars{}.Last()
		assert.False(t, ok)
	})

	t.Run("most recent last", func(t *testing.T) {
		bars := Bars{{Close: 100}, {Close: 101}, {Close: 102}}
		last, ok := bars.Last()
		assert.True(t, ok)
		assert.Equal(t, 102.0, last.Close)
	})
}
