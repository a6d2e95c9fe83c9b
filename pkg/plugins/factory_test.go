package plugins

// Tests for the named factory registry.

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopFactory(d *Descriptor) (Plugin, error) {
	return nil, nil
}

func TestRegisterFactory(t *testing.T) {
	err := RegisterFactory("factory-test-basic", nopFactory)
	assert.NoError(t, err)

	f, ok := LookupFactory("factory-test-basic")
	assert.True(t, ok)
	assert.NotNil(t, f)
}

func TestRegisterFactory_EmptyName(t *testing.T) {
	err := RegisterFactory("", nopFactory)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestRegisterFactory_NilFactory(t *testing.T) {
	err := RegisterFactory("factory-test-nil", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nil factory")
}

func TestRegisterFactory_Duplicate(t *testing.T) {
	require.NoError(t, RegisterFactory("factory-test-dup", nopFactory))

	err := RegisterFactory("factory-test-dup", nopFactory)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Contains(t, err.Error(), "factory-test-dup")
}

func TestMustRegisterFactory(t *testing.T) {
	assert.NotPanics(t, func() {
		MustRegisterFactory("factory-test-must", nopFactory)
	})

	assert.Panics(t, func() {
		MustRegisterFactory("factory-test-must", nopFactory)
	})
}

func TestLookupFactory_NotFound(t *testing.T) {
	f, ok := LookupFactory("factory-test-never-registered")
	assert.False(t, ok)
	assert.Nil(t, f)
}

func TestFactoryNames(t *testing.T) {
	require.NoError(t, RegisterFactory("factory-test-names-b", nopFactory))
	require.NoError(t, RegisterFactory("factory-test-names-a", nopFactory))

	names := FactoryNames()

	assert.Contains(t, names, "factory-test-names-a")
	assert.Contains(t, names, "factory-test-names-b")
	assert.True(t, sort.StringsAreSorted(names))
}
