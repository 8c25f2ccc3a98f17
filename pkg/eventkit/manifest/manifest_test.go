package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventkit/pkg/eventkit"
	"github.com/randalmurphal/eventkit/pkg/eventkit/manifest"
)

const testYAML = `type: Connection
events:
  - name: connected
    description: Raised after the transport handshake completes.
    params:
      - Remote address of the peer.
      - Negotiated protocol version.
  - name: disconnected
    description: Raised when the transport drops.
`

const testJSON = `{
  "type": "Connection",
  "events": [
    {
      "name": "connected",
      "description": "Raised after the transport handshake completes.",
      "params": ["Remote address of the peer.", "Negotiated protocol version."]
    },
    {
      "name": "disconnected",
      "description": "Raised when the transport drops."
    }
  ]
}`

func TestFromYAML(t *testing.T) {
	m, err := manifest.FromYAML([]byte(testYAML))
	require.NoError(t, err)

	assert.Equal(t, "Connection", m.Type)
	require.Len(t, m.Events, 2)
	assert.Equal(t, "connected", m.Events[0].Name)
	assert.Len(t, m.Events[0].Params, 2)
	assert.Equal(t, "disconnected", m.Events[1].Name)
	assert.Empty(t, m.Events[1].Params)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := manifest.FromYAML([]byte(":\n  - not: [valid"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse yaml")
}

func TestFromJSON(t *testing.T) {
	m, err := manifest.FromJSON([]byte(testJSON))
	require.NoError(t, err)

	yamlEquivalent, err := manifest.FromYAML([]byte(testYAML))
	require.NoError(t, err)
	assert.Equal(t, yamlEquivalent, m)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := manifest.FromJSON([]byte("{"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse json")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(testYAML), 0o644))
	jsonPath := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(testJSON), 0o644))

	fromYAML, err := manifest.Load(yamlPath)
	require.NoError(t, err)
	fromJSON, err := manifest.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.toml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))

	_, err := manifest.Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported manifest file extension")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read manifest file")
}

func TestValidate(t *testing.T) {
	valid, err := manifest.FromYAML([]byte(testYAML))
	require.NoError(t, err)
	assert.NoError(t, valid.Validate())

	t.Run("missing type", func(t *testing.T) {
		m := manifest.Manifest{Events: []manifest.Entry{{Name: "connected"}}}
		assert.ErrorContains(t, m.Validate(), "type is required")
	})

	t.Run("missing event name", func(t *testing.T) {
		m := manifest.Manifest{Type: "Connection", Events: []manifest.Entry{{Description: "no name"}}}
		assert.ErrorContains(t, m.Validate(), "name is required")
	})

	t.Run("duplicate event name", func(t *testing.T) {
		m := manifest.Manifest{Type: "Connection", Events: []manifest.Entry{
			{Name: "connected"},
			{Name: "connected"},
		}}
		assert.ErrorContains(t, m.Validate(), "duplicate event name")
	})
}

func TestApply(t *testing.T) {
	m, err := manifest.FromYAML([]byte(testYAML))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	em := eventkit.New(m.Type)
	m.Apply(em)

	assert.Equal(t, []string{"connected", "disconnected"}, em.DocumentedEvents())

	md := em.BuildDocs("markdown")
	assert.Contains(t, md, "# Connection Events <2 Events>")
	assert.Contains(t, md, "Raised after the transport handshake completes.")
	assert.Contains(t, md, "> **1**. Remote address of the peer.<br>")
}
