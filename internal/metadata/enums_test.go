package metadata_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

func TestEnumFromType(t *testing.T) {
	info, ok := metadata.EnumFromType(reflect.TypeFor[*Role](), ns)
	require.True(t, ok)
	assert.Equal(t, "Role:#Sample", info.Name.String())
	assert.Equal(t, []string{"Admin", "User"}, info.Values)
	assert.Equal(t, []int64{0, 1}, info.Ordinals)
	assert.False(t, info.Text)

	_, ok = metadata.EnumFromType(reflect.TypeFor[int](), ns)
	assert.False(t, ok)
	_, ok = metadata.EnumFromType(nil, ns)
	assert.False(t, ok)
}

func TestEnumFromTypePointerReceiver(t *testing.T) {
	for _, rt := range []reflect.Type{reflect.TypeFor[Shape](), reflect.TypeFor[*Shape]()} {
		info, ok := metadata.EnumFromType(rt, ns)
		require.True(t, ok, rt.String())
		assert.Equal(t, "Shape:#Sample", info.Name.String())
		assert.Equal(t, []string{"Circle", "Square"}, info.Values)
		assert.Equal(t, []int64{1, 4}, info.Ordinals)
		assert.False(t, info.Text)
	}
}

func TestBuildEnumCatalog(t *testing.T) {
	role := &metadata.EnumInfo{Name: qn("Role"), Values: []string{"Admin", "User"}, Ordinals: []int64{0, 1}}
	shade := &metadata.EnumInfo{Name: qn("Shade"), Values: []string{"Light"}, Ordinals: []int64{7}}

	catalog, err := metadata.BuildEnumCatalog([]metadata.EnumRef{
		{Type: qn("User"), Property: "Kind", Enum: role},
		{Type: qn("Paint"), Property: "Shade", Enum: shade},
		{Type: qn("Group"), Property: "Kind", Enum: role},
		{Type: qn("Group"), Property: "Nothing"},
	})
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Role", catalog[0].ShortName)
	assert.Equal(t, "Shade", catalog[1].ShortName)

	for _, e := range catalog {
		assert.Equal(t, len(e.Values), len(e.Ordinals))
	}
}

func TestBuildEnumCatalogEmpty(t *testing.T) {
	catalog, err := metadata.BuildEnumCatalog(nil)
	require.NoError(t, err)
	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}

func TestBuildEnumCatalogErrors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := metadata.BuildEnumCatalog([]metadata.EnumRef{{
			Type: qn("User"), Property: "Kind",
			Enum: &metadata.EnumInfo{Name: qn("Role"), Values: []string{"Admin", "User"}, Ordinals: []int64{0}},
		}})
		require.ErrorIs(t, err, metadata.ErrUnsupportedModel)
		assert.ErrorContains(t, err, "2 values and 1 ordinals")
	})

	t.Run("conflicting definitions", func(t *testing.T) {
		_, err := metadata.BuildEnumCatalog([]metadata.EnumRef{
			{Type: qn("User"), Property: "Kind", Enum: &metadata.EnumInfo{Name: qn("Role"), Values: []string{"Admin"}, Ordinals: []int64{0}}},
			{Type: qn("Group"), Property: "Kind", Enum: &metadata.EnumInfo{Name: qn("Role"), Values: []string{"Admin"}, Ordinals: []int64{1}}},
		})
		require.ErrorIs(t, err, metadata.ErrUnsupportedModel)

		var ume *metadata.UnsupportedModelError
		require.ErrorAs(t, err, &ume)
		assert.Equal(t, "Group:#Sample", ume.Type)
		assert.Equal(t, "Kind", ume.Property)
	})
}
