package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupDefaults(t *testing.T) {
	t.Run("tags and security inherited", func(t *testing.T) {
		s := New(Config{})
		g := s.Group().Tags("garage").Security("x-api-key")
		g.Op("parkCar")

		doc, err := s.Build(singleRoute("POST", "/garage", "parkCar"))
		require.NoError(t, err)

		op := doc.Paths["/garage"].Post
		assert.Equal(t, []string{"garage"}, op.Tags)
		require.Len(t, op.Security, 1)
		assert.Contains(t, op.Security[0], "x-api-key")
	})

	t.Run("operation security overrides group scheme without duplicating", func(t *testing.T) {
		s := New(Config{})
		g := s.Group().Security("oauth", "read")
		g.Op("parkCar").Security("oauth", "read", "write")
		g.Op("getCar")

		routes := NewRouteList().
			Add(Route{Method: "POST", Path: "/garage", Operation: "parkCar"}).
			Add(Route{Method: "GET", Path: "/car", Operation: "getCar"})

		doc, err := s.Build(routes)
		require.NoError(t, err)

		parkSec := doc.Paths["/garage"].Post.Security
		require.Len(t, parkSec, 1)
		assert.Equal(t, []string{"read", "write"}, parkSec[0]["oauth"])

		// The sibling keeps the group's scopes.
		getSec := doc.Paths["/car"].Get.Security
		require.Len(t, getSec, 1)
		assert.Equal(t, []string{"read"}, getSec[0]["oauth"])
	})

	t.Run("group security dedupes on re-attachment", func(t *testing.T) {
		s := New(Config{})
		s.Group().Security("x-api-key").Security("x-api-key").Op("getCar")

		doc, err := s.Build(singleRoute("GET", "/car", "getCar"))
		require.NoError(t, err)
		assert.Len(t, doc.Paths["/car"].Get.Security, 1)
	})

	t.Run("shared error response", func(t *testing.T) {
		s := New(Config{})
		g := s.Group().Response(401, "Missing API key", nil)
		g.Op("getCar")
		g.Op("parkCar")

		routes := NewRouteList().
			Add(Route{Method: "GET", Path: "/car", Operation: "getCar"}).
			Add(Route{Method: "POST", Path: "/garage", Operation: "parkCar"})

		doc, err := s.Build(routes)
		require.NoError(t, err)

		assert.Equal(t, "Missing API key", doc.Paths["/car"].Get.Responses["401"].Description)
		assert.Equal(t, "Missing API key", doc.Paths["/garage"].Post.Responses["401"].Description)
	})

	t.Run("operation response overrides group response", func(t *testing.T) {
		s := New(Config{})
		g := s.Group().Response(404, "group default", nil)
		g.Op("getCar").Response(404, "No such car", nil)

		doc, err := s.Build(singleRoute("GET", "/car", "getCar"))
		require.NoError(t, err)

		assert.Equal(t, "No such car", doc.Paths["/car"].Get.Responses["404"].Description)
	})

	t.Run("operation response does not leak into siblings", func(t *testing.T) {
		s := New(Config{})
		g := s.Group().Response(404, "group default", nil)
		g.Op("getCar").Response(404, "No such car", nil)
		g.Op("getGarage")

		routes := NewRouteList().
			Add(Route{Method: "GET", Path: "/car", Operation: "getCar"}).
			Add(Route{Method: "GET", Path: "/garage", Operation: "getGarage"})

		doc, err := s.Build(routes)
		require.NoError(t, err)

		assert.Equal(t, "group default", doc.Paths["/garage"].Get.Responses["404"].Description)
	})

	t.Run("deprecated applies to members", func(t *testing.T) {
		s := New(Config{})
		s.Group().Deprecated().Op("oldOp")

		doc, err := s.Build(singleRoute("GET", "/old", "oldOp"))
		require.NoError(t, err)
		assert.True(t, doc.Paths["/old"].Get.Deprecated)
	})

	t.Run("content type defaults", func(t *testing.T) {
		s := New(Config{})
		s.Group().ProducesContentTypes("text/csv").Op("exportCars")

		doc, err := s.Build(singleRoute("GET", "/export", "exportCars"))
		require.NoError(t, err)
		assert.Equal(t, []string{"text/csv"}, doc.Paths["/export"].Get.Produces)
	})

	t.Run("existing builder is not touched", func(t *testing.T) {
		s := New(Config{})
		b := s.Op("getCar")
		g := s.Group().Tags("garage")

		assert.Same(t, b, g.Op("getCar"))
		assert.Empty(t, b.meta.tags)
	})

	t.Run("extra tags append after group tags", func(t *testing.T) {
		s := New(Config{})
		s.Group().Tags("garage").Op("getCar").Tags("cars")

		doc, err := s.Build(singleRoute("GET", "/car", "getCar"))
		require.NoError(t, err)
		assert.Equal(t, []string{"garage", "cars"}, doc.Paths["/car"].Get.Tags)
	})
}

func TestOperationBuilder(t *testing.T) {
	t.Run("same name returns same builder", func(t *testing.T) {
		s := New(Config{})
		assert.Same(t, s.Op("getCar"), s.Op("getCar"))
		assert.NotSame(t, s.Op("getCar"), s.Op("parkCar"))
	})

	t.Run("scalar fields are last-write-wins", func(t *testing.T) {
		s := New(Config{})
		s.Op("getCar").Summary("old")
		s.Op("getCar").Summary("new")
		assert.Equal(t, "new", s.Op("getCar").meta.summary)
	})

	t.Run("tags deduplicate", func(t *testing.T) {
		s := New(Config{})
		s.Op("getCar").Tags("a", "b", "a").Tags("b", "c")
		assert.Equal(t, []string{"a", "b", "c"}, s.Op("getCar").meta.tags)
	})

	t.Run("attachment order does not matter", func(t *testing.T) {
		buildDoc := func(attach func(s *Spec)) *Document {
			s := New(Config{})
			attach(s)
			doc, err := s.Build(singleRoute("GET", "/car", "getCar"))
			require.NoError(t, err)
			return doc
		}

		a := buildDoc(func(s *Spec) {
			s.Op("getCar").Summary("Fetch").Produces(testCar{})
		})
		b := buildDoc(func(s *Spec) {
			s.Op("getCar").Produces(testCar{})
			s.Op("getCar").Summary("Fetch")
		})

		assert.Equal(t, a.Paths["/car"].Get, b.Paths["/car"].Get)
	})
}
