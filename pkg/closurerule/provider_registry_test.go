package closurerule

import (
	"testing"

	grule "github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct{ name string }

func (p *fakeProvider) Name() string                            { return p.name }
func (p *fakeProvider) LoadInfo() grule.LoadInfo                { return grule.LoadInfo{} }
func (p *fakeProvider) KindInfo() grule.KindInfo                { return grule.KindInfo{} }
func (p *fakeProvider) ProvideRules(pkg Package) []RuleProvider { return nil }

func TestProviderRegistryMap(t *testing.T) {
	registry := NewProviderRegistryMap()
	require.NoError(t, registry.RegisterProvider("b", &fakeProvider{"b"}))
	require.NoError(t, registry.RegisterProvider("a", &fakeProvider{"a"}))

	err := registry.RegisterProvider("a", &fakeProvider{"a"})
	assert.EqualError(t, err, `duplicate rule provider registration: "a"`)

	if diff := cmp.Diff([]string{"a", "b"}, registry.ProviderNames()); diff != "" {
		t.Errorf("ProviderNames (-want +got):\n%s", diff)
	}

	got, ok := registry.LookupProvider("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name())

	_, ok = registry.LookupProvider("c")
	assert.False(t, ok)
}
