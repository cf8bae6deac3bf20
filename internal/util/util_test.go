package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeDomain(" Example.COM. "))
	assert.Equal(t, "", NormalizeDomain(""))
}

func TestReverseLabels(t *testing.T) {
	assert.Equal(t, "com.example.sub", ReverseLabels("sub.example.com"))
	assert.Equal(t, "localhost", ReverseLabels("localhost"))
}

func TestIsDottedQuad(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10.1.2.3", true},
		{"999.1.1.1", true},
		{"10.1.2", false},
		{"10.1.2.3.4", false},
		{"a.b.c.d", false},
		{"10..2.3", false},
		{"1000.1.1.1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDottedQuad(tt.in), tt.in)
	}
}
