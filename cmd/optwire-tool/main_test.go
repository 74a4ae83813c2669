package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"isc.org/optwire"
)

// Runs the tool with the specified arguments and returns its output.
func runApp(t *testing.T, args ...string) (string, error) {
	var output bytes.Buffer
	app := setupApp()
	app.Writer = &output
	app.ErrWriter = &output
	err := app.Run(append([]string{"optwire-tool"}, args...))
	return output.String(), err
}

// This test checks if optwire-tool -h presents all commands.
func TestMainHelp(t *testing.T) {
	output, err := runApp(t, "-h")
	require.NoError(t, err)
	for _, fragment := range []string{"optwire-tool", "--version", "--help", "--log-level", "encode", "decode", "check-config"} {
		require.Contains(t, output, fragment)
	}
}

// This test checks if optwire-tool -v prints the version.
func TestVersion(t *testing.T) {
	output, err := runApp(t, "-v")
	require.NoError(t, err)
	require.Equal(t, optwire.Version+"\n", output)
}

// Test that an invalid log level is rejected.
func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "foo", "decode", "-x", "ff")
	require.ErrorContains(t, err, "invalid log level foo")
}

// Test encoding the option map document.
func TestRunEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	document := `
1:
  kind: ip
  value: 255.255.255.0
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	output, err := runApp(t, "encode", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "0104ffffff00ff\n", output)
}

// Test encoding the option map JSON document.
func TestRunEncodeJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	document := `{
		// Interface MTU.
		"26": { "kind": "u16", "value": 1500 }
	}`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	output, err := runApp(t, "encode", "-f", path)
	require.NoError(t, err)
	require.Equal(t, "1a0205dcff\n", output)
}

// Test that encoding a malformed document fails.
func TestRunEncodeMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	document := `{60: {kind: b64, value: "not-valid-base64!"}}`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	_, err := runApp(t, "encode", "--file", path)
	require.ErrorContains(t, err, "option 60")

	_, err = runApp(t, "encode", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read the options file")
}

// Test that encoding a value the decoder rejects for its code fails.
func TestRunEncodeRejectedByDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	document := `{1: {kind: u8, value: 1}}`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	output, err := runApp(t, "encode", "--file", path)
	require.ErrorContains(t, err, "rejected by the decoder")
	require.Empty(t, output)
}

// Test decoding the option stream to YAML.
func TestRunDecodeYAML(t *testing.T) {
	output, err := runApp(t, "decode", "--hex", "01:04:ff:ff:ff:00:ff")
	require.NoError(t, err)
	require.Contains(t, output, "kind: ip")
	require.Contains(t, output, "value: 255.255.255.0")
}

// Test decoding the option stream to JSON.
func TestRunDecodeJSON(t *testing.T) {
	output, err := runApp(t, "decode", "-x", "1a0205dcff", "--format", "json")
	require.NoError(t, err)
	require.Contains(t, output, `"kind": "u16"`)
	require.Contains(t, output, `"value": 1500`)
}

// Test that decoding invalid input fails.
func TestRunDecodeErrors(t *testing.T) {
	_, err := runApp(t, "decode", "-x", "zz")
	require.ErrorContains(t, err, "invalid hexadecimal data")

	_, err = runApp(t, "decode", "-x", "0105ffff")
	require.Error(t, err)

	_, err = runApp(t, "decode", "-x", "ff", "--format", "xml")
	require.ErrorContains(t, err, "unsupported output format xml")
}

// Test checking the configuration file.
func TestRunCheckConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	document := `
networks:
  192.0.2.0/24:
    ranges:
      - start: 192.0.2.10
        end: 192.0.2.20
        options:
          values:
            6:
              kind: ip_list
              value: [192.0.2.1]
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	output, err := runApp(t, "check-config", "--file", path)
	require.NoError(t, err)
	require.Contains(t, output, "is valid (1 networks)")
}

// Test that checking an invalid configuration file fails.
func TestRunCheckConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"networks": {"foo": {}}}`), 0o600))

	_, err := runApp(t, "check-config", "--file", path)
	require.ErrorContains(t, err, "invalid configuration file")
}
