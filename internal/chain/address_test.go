package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreAddressesEqual(t *testing.T) {
	checksummed := "0xfD36E2c2a6789Db23113685031d7F16329158384"
	lower := "0xfd36e2c2a6789db23113685031d7f16329158384"

	assert.True(t, AreAddressesEqual(checksummed, lower))
	assert.True(t, AreAddressesEqual(" "+lower+" ", checksummed))
	assert.True(t, AreAddressesEqual("0xAAA", "0xaaa"))
	assert.False(t, AreAddressesEqual(checksummed, "0x94d1820b2D1c7c7452A163983Dc888CEC546b77D"))
	assert.False(t, AreAddressesEqual("", ""))
	assert.False(t, AreAddressesEqual(checksummed, ""))
}

func TestParseAddresses(t *testing.T) {
	got, err := ParseAddresses([]string{" 0xfd36e2c2a6789db23113685031d7f16329158384", "", "  "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0xfD36E2c2a6789Db23113685031d7F16329158384", got[0].Hex())

	_, err = ParseAddresses([]string{"0x123"})
	assert.Error(t, err)
}
