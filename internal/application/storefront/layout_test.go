package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/about", JoinPath("", "/about"))
	assert.Equal(t, "/shop/about", JoinPath("/shop/", "about"))
	assert.Equal(t, "/", JoinPath("", "/"))
}

func TestNavigation_Layout(t *testing.T) {
	nav := NewNavigation("/rituals", nil)
	nav.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	l := nav.Layout("/products/rose-chai", true)
	assert.True(t, l.MenuOpen)
	assert.Equal(t, "/rituals/", l.HomePath)
	require.Len(t, l.Nav, 5)

	active := map[string]bool{}
	for _, link := range l.Nav {
		active[link.Name] = link.Active
	}
	assert.True(t, active["Shop"])
	assert.False(t, active["Home"])
	assert.Equal(t, "/rituals/journal", l.Nav[3].Path)

	assert.Equal(t, "© 2025 Saanjh Rituals. All rights reserved.", l.Footer.Copyright)
	require.Len(t, l.Footer.Columns, 2)
	assert.Equal(t, "/rituals/cart", l.Footer.Columns[0].Links[1].Path)
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		item, current string
		want          bool
	}{
		{"/", "/", true},
		{"/", "", true},
		{"/", "/about", false},
		{"/journal", "/journal/abc", true},
		{"/journal", "/journalism", false},
		{"/store", "/cart", true},
		{"/contact", "/about", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isActive(tt.item, tt.current), "%s at %s", tt.item, tt.current)
	}
}

func TestNavigation_Relative(t *testing.T) {
	nav := NewNavigation("/rituals", nil)
	assert.Equal(t, "/", nav.Relative("/rituals"))
	assert.Equal(t, "/", nav.Relative("/rituals/"))
	assert.Equal(t, "/journal/a1", nav.Relative("/rituals/journal/a1"))

	root := NewNavigation("", nil)
	assert.Equal(t, "/about", root.Relative("/about"))
}
