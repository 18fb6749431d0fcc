package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	assert.Equal(t, 12.5, ToFloat(12.5))
	assert.Equal(t, 3.0, ToFloat(3))
	assert.Equal(t, 45.0, ToFloat("45"))
	assert.Equal(t, 0.0, ToFloat("not a number"))
	assert.Equal(t, 0.0, ToFloat(nil))
	assert.Equal(t, 0.0, ToFloat(""))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "drymartini", NormalizeName("Dry  Martini"))
	assert.Equal(t, "drymartini", NormalizeName("DRY MARTINI"))
	assert.Equal(t, "琴通寧", NormalizeName("琴 通寧"))
	assert.Equal(t, "", NormalizeName("   "))
}
