package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawToKDA(t *testing.T) {
	tests := []struct {
		raw  uint64
		want string
	}{
		{0, "0.000000000000"},
		{1, "0.000000000001"},
		{1000000000000, "1.000000000000"},
		{2500000000000, "2.500000000000"},
		{123456789012345, "123.456789012345"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RawToKDA(tt.raw))
	}
}

func TestKDAToRaw(t *testing.T) {
	tests := []struct {
		kda  string
		want uint64
	}{
		{"0", 0},
		{"1", 1000000000000},
		{"2.5", 2500000000000},
		{"0.000000000001", 1},
		{" 1.5 ", 1500000000000},
		{"123.456789012345999", 123456789012345}, // excess precision truncates
	}
	for _, tt := range tests {
		got, err := KDAToRaw(tt.kda)
		require.NoError(t, err, "kda %q", tt.kda)
		assert.Equal(t, tt.want, got, "kda %q", tt.kda)
	}
}

func TestKDAToRawRejectsMalformed(t *testing.T) {
	for _, kda := range []string{"", "abc", "1.2.3", "-1.0", "1,5"} {
		_, err := KDAToRaw(kda)
		assert.Error(t, err, "kda %q", kda)
	}
}

func TestCompareKDAAmounts(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1", 0},
		{"1.5", "1.50", 0},
		{"0.5", "1.0", -1},
		{"2", "1.999999999999", 1},
	}
	for _, tt := range tests {
		got, err := CompareKDAAmounts(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}
}

func TestCompareKDAAmountsFailsClosed(t *testing.T) {
	_, err := CompareKDAAmounts("garbage", "1.0")
	assert.Error(t, err)
	_, err = CompareKDAAmounts("1.0", "")
	assert.Error(t, err)
}
