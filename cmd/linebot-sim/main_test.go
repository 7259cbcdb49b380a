package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	list, err := parseSections("3, 1,2,")
	require.NoError(t, err)
	require.Equal(t, []uint8{3, 1, 2}, list)

	for _, str := range []string{"", "0", "1,x", "128"} {
		_, err := parseSections(str)
		require.Error(t, err, str)
	}
}
