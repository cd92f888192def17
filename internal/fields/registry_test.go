package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SimpleFieldsHaveOneTarget(t *testing.T) {
	r := Default()
	seen := make(map[string]string)
	for _, f := range r.SimpleFields() {
		require.NotEmpty(t, f.Target, "field %s", f.ID)
		if other, dup := seen[f.Target]; dup {
			t.Fatalf("fields %s and %s share preview target %s", other, f.ID, f.Target)
		}
		seen[f.Target] = f.ID
	}
}

func TestDefault_SubFieldNamesUniqueWithinGroup(t *testing.T) {
	r := Default()
	for _, g := range r.Groups() {
		names := make(map[string]bool)
		keys := make(map[string]bool)
		for _, sf := range g.SubFields {
			assert.False(t, names[sf.Name], "duplicate name %s in %s", sf.Name, g.Name)
			assert.False(t, keys[sf.Key], "duplicate key %s in %s", sf.Key, g.Name)
			assert.NotEmpty(t, sf.Fallback)
			names[sf.Name] = true
			keys[sf.Key] = true
		}
	}
}

func TestRegistry_Lookups(t *testing.T) {
	r := Default()

	f, ok := r.Simple("email")
	require.True(t, ok)
	assert.Equal(t, KindEmail, f.Kind)
	assert.True(t, f.Kind.IsLink())

	s, ok := r.Skill("tech-tools")
	require.True(t, ok)
	assert.Equal(t, "group-tools", s.Container)

	assert.True(t, r.Known("summary"))
	assert.True(t, r.Known("tech-ai"))
	assert.False(t, r.Known("nope"))

	_, ok = r.Simple("tech-ai")
	assert.False(t, ok)
}

func TestGroupSchema_SubFieldLookup(t *testing.T) {
	g, ok := Default().Group(GroupExperience)
	require.True(t, ok)

	sf, ok := g.SubField("role")
	require.True(t, ok)
	assert.Equal(t, "exp-role", sf.Key)

	sf, ok = g.SubFieldByKey("exp-desc")
	require.True(t, ok)
	assert.Equal(t, "description", sf.Name)
	assert.True(t, sf.Multiline)

	assert.Equal(t, []string{"role", "company", "duration", "description"}, g.Names())

	_, ok = Default().Group("awards")
	assert.False(t, ok)
}

func TestRegistry_FieldIDsOrder(t *testing.T) {
	r := New(
		[]SimpleField{{ID: "a", Target: "cv-a"}},
		[]SkillField{{ID: "b", Target: "cv-b"}},
		nil, nil,
	)
	assert.Equal(t, []string{"a", "b"}, r.FieldIDs())
	assert.Empty(t, r.Sections())
}
