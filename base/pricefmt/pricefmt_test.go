package pricefmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromWei(t *testing.T) {
	value, ok := new(big.Int).SetString("15000000000000000000", 10)
	assert.True(t, ok)
	assert.Equal(t, "15", FromWei(value).String())

	assert.Equal(t, "0.000045", FromWei(big.NewInt(45000000000000)).String())
}

func TestFromWeiString(t *testing.T) {
	d, err := FromWeiString("25000000000000000000")
	assert.NoError(t, err)
	assert.Equal(t, "25", d.String())

	_, err = FromWeiString("not-a-number")
	assert.Error(t, err)
}
