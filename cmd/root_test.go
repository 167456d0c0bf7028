package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"flag values", []string{"get", "head"}, []string{"get", "head"}},
		{"comma separated env value", []string{"get,head"}, []string{"get", "head"}},
		{"blanks dropped", []string{" get , ,head "}, []string{"get", "head"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, methodList(tt.in))
		})
	}
}
