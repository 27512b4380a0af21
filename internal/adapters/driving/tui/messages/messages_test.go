package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewCanvas, "canvas"},
		{ViewPalette, "palette"},
		{ViewSite, "site"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewCanvas_IsZeroValue(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewCanvas, v)
}
