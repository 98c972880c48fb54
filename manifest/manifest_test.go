package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const numberSchema = `{"type": "object", "properties": {"value": {"type": "integer"}}}`

func TestNewMessageDeclaration(t *testing.T) {
	decl, err := NewMessageDeclaration("random_number", "app_1/random_number_broadcast", SchemaDocument(numberSchema), Event)
	require.NoError(t, err)
	assert.Equal(t, "random_number", decl.Identifier)
	assert.Equal(t, Event, decl.Kind)
}

func TestNewMessageDeclarationRejectsEmptyFields(t *testing.T) {
	_, err := NewMessageDeclaration("", "a/b", SchemaDocument(numberSchema), Event)
	assert.Error(t, err)

	_, err = NewMessageDeclaration("x", "", SchemaDocument(numberSchema), Event)
	assert.Error(t, err)
}

func TestNewMessageDeclarationRejectsMalformedSchema(t *testing.T) {
	_, err := NewMessageDeclaration("bad", "a/b", SchemaDocument(`{not json`), Event)
	assert.Error(t, err)
}

func TestNewMessageDeclarationRejectsEmptySchema(t *testing.T) {
	_, err := NewMessageDeclaration("bad", "a/b", SchemaDocument(``), Event)
	assert.Error(t, err)
}

func TestNewMessageReferenceRejectsUnknownModule(t *testing.T) {
	_, err := NewMessageReference("random_number", "app_1", "not_a_module")
	assert.Error(t, err)
}

func TestNewAppManifestRejectsMismatchedKind(t *testing.T) {
	requestDecl, err := NewMessageDeclaration("ping", "app_1/ping", SchemaDocument(numberSchema), Request)
	require.NoError(t, err)

	_, err = NewAppManifest([]MessageDeclaration{requestDecl}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestAppManifestReferencesEvent(t *testing.T) {
	decl, err := NewMessageDeclaration("random_number", "app_1/random_number_broadcast", SchemaDocument(numberSchema), Event)
	require.NoError(t, err)

	ref, err := NewMessageReference("random_number", "app_1", ModuleBroadcastedEvents)
	require.NoError(t, err)

	listener, err := NewAppManifest(nil, nil, nil, []MessageReference{ref}, nil)
	require.NoError(t, err)

	assert.True(t, listener.ReferencesEvent("app_1", decl))
	assert.False(t, listener.ReferencesEvent("app_2", decl))
}

func TestNewSystemDefinitionRejectsDuplicateNames(t *testing.T) {
	m, err := NewAppManifest(nil, nil, nil, nil, nil)
	require.NoError(t, err)

	_, err = NewSystemDefinition([]NamedManifest{
		{Name: "app_1", Manifest: m},
		{Name: "app_1", Manifest: m},
	})
	require.Error(t, err)
	var dup *DuplicateAppNameError
	assert.ErrorAs(t, err, &dup)
}

func TestNewSystemDefinitionPreservesOrder(t *testing.T) {
	m, err := NewAppManifest(nil, nil, nil, nil, nil)
	require.NoError(t, err)

	def, err := NewSystemDefinition([]NamedManifest{
		{Name: "app_2", Manifest: m},
		{Name: "app_1", Manifest: m},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app_2", "app_1"}, def.Names())
	assert.Equal(t, 2, def.Len())
}
