package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteList(t *testing.T) {
	t.Run("registration order preserved", func(t *testing.T) {
		l := NewRouteList().
			Add(Route{Method: "GET", Path: "/b", Operation: "b"}).
			Add(Route{Method: "GET", Path: "/a", Operation: "a"})

		routes := l.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "/b", routes[0].Path)
		assert.Equal(t, "/a", routes[1].Path)
	})

	t.Run("re-adding replaces in place", func(t *testing.T) {
		l := NewRouteList().
			Add(Route{Method: "GET", Path: "/a", Operation: "old"}).
			Add(Route{Method: "GET", Path: "/b", Operation: "b"}).
			Add(Route{Method: "GET", Path: "/a", Operation: "new"})

		routes := l.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "new", routes[0].Operation)
		assert.Equal(t, "b", routes[1].Operation)
	})

	t.Run("same path different methods coexist", func(t *testing.T) {
		l := NewRouteList().
			Add(Route{Method: "GET", Path: "/a", Operation: "get"}).
			Add(Route{Method: "POST", Path: "/a", Operation: "post"})

		assert.Len(t, l.Routes(), 2)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		l := NewRouteList().
			Add(Route{Method: "GET", Path: "/a", Operation: "a"}).
			AddStatic("/assets")

		routes := l.Routes()
		routes[0].Operation = "mutated"
		assert.Equal(t, "a", l.Routes()[0].Operation)

		static := l.StaticPaths()
		static[0] = "/mutated"
		assert.Equal(t, []string{"/assets"}, l.StaticPaths())
	})
}
