package dhcp4config

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/pkg/errors"
	require "github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
)

// Test parsing all option kinds from a YAML document.
func TestUnmarshalOptionMapYAML(t *testing.T) {
	document := `
1:
  kind: ip
  value: 255.255.255.0
3:
  kind: ip_list
  value: [192.0.2.1, 192.0.2.2]
119:
  kind: domain_list
  value: [example.org]
23:
  kind: u8
  value: 64
26:
  kind: u16
  value: 1500
51:
  kind: u32
  value: 3600
2:
  kind: i32
  value: -10
19:
  kind: bool
  value: true
15:
  kind: str
  value: example.org
60:
  kind: b64
  value: AQID
224:
  kind: hex
  value: "0a0b"
43:
  kind: sub_option
  value:
    1:
      kind: str
      value: abc
`
	options, err := UnmarshalOptionMapYAML([]byte(document))
	require.NoError(t, err)
	require.Equal(t, dhcpmodel.OptionMap{
		1:   dhcpmodel.IPValue(net.IPv4(255, 255, 255, 0).To4()),
		3:   dhcpmodel.IPListValue{net.IPv4(192, 0, 2, 1).To4(), net.IPv4(192, 0, 2, 2).To4()},
		119: dhcpmodel.DomainListValue{"example.org"},
		23:  dhcpmodel.Uint8Value(64),
		26:  dhcpmodel.Uint16Value(1500),
		51:  dhcpmodel.Uint32Value(3600),
		2:   dhcpmodel.Int32Value(-10),
		19:  dhcpmodel.BoolValue(true),
		15:  dhcpmodel.StringValue("example.org"),
		60:  dhcpmodel.Base64Value("AQID"),
		224: dhcpmodel.HexValue("0a0b"),
		43: dhcpmodel.SubOptionValue{
			1: dhcpmodel.StringValue("abc"),
		},
	}, options)
}

// Test parsing the option map from a JSON document with comments.
func TestUnmarshalOptionMapJSON(t *testing.T) {
	document := `{
		// Subnet mask.
		"1": { "kind": "ip", "value": "255.255.255.0" },
		"43": {
			"kind": "sub_option",
			"value": {
				"2": { "kind": "u16", "value": 8080 }
			}
		}
	}`
	options, err := UnmarshalOptionMapJSON([]byte(document))
	require.NoError(t, err)
	require.Equal(t, dhcpmodel.OptionMap{
		1: dhcpmodel.IPValue(net.IPv4(255, 255, 255, 0).To4()),
		43: dhcpmodel.SubOptionValue{
			2: dhcpmodel.Uint16Value(8080),
		},
	}, options)
}

// Test that a malformed payload is reported with the option code.
func TestUnmarshalOptionMapMalformed(t *testing.T) {
	testCases := map[string]struct {
		document string
		code     uint8
	}{
		"base64":       {`{60: {kind: b64, value: "not-valid-base64!"}}`, 60},
		"hex":          {`{61: {kind: hex, value: "xyz"}}`, 61},
		"domain":       {`{119: {kind: domain_list, value: ["foo..example.org"]}}`, 119},
		"ip":           {`{1: {kind: ip, value: "2001:db8:1::1"}}`, 1},
		"ip list":      {`{3: {kind: ip_list, value: ["192.0.2.1", "foo"]}}`, 3},
		"u8 overflow":  {`{23: {kind: u8, value: 300}}`, 23},
		"unknown kind": {`{23: {kind: float, value: 1.5}}`, 23},
		"no value":     {`{23: {kind: u8}}`, 23},
		"nested":       {`{43: {kind: sub_option, value: {5: {kind: b64, value: "!!"}}}}`, 5},
		"reserved":     {`{255: {kind: u8, value: 1}}`, 255},
	}
	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			options, err := UnmarshalOptionMapYAML([]byte(testCase.document))
			require.Nil(t, options)
			var malformedErr *dhcpmodel.MalformedValueError
			require.True(t, errors.As(err, &malformedErr), "%+v", err)
			require.Equal(t, testCase.code, malformedErr.Code)
		})
	}
}

// Test that the document nesting is limited.
func TestUnmarshalOptionMapTooDeep(t *testing.T) {
	document := `{"kind": "u8", "value": 1}`
	for i := 0; i <= dhcpmodel.MaxSubOptionDepth; i++ {
		document = `{"kind": "sub_option", "value": {"1": ` + document + `}}`
	}
	document = `{"43": ` + document + `}`
	_, err := UnmarshalOptionMapJSON([]byte(document))
	require.ErrorContains(t, err, "nested deeper")
}

// Test serializing the option map to YAML and parsing it back.
func TestMarshalOptionMapYAML(t *testing.T) {
	options := dhcpmodel.OptionMap{
		1:  dhcpmodel.IPValue(net.IPv4(255, 255, 255, 0).To4()),
		6:  dhcpmodel.IPListValue{net.IPv4(192, 0, 2, 1).To4()},
		2:  dhcpmodel.Int32Value(-1),
		19: dhcpmodel.BoolValue(false),
		43: dhcpmodel.SubOptionValue{1: dhcpmodel.HexValue("0102")},
	}
	data, err := MarshalOptionMapYAML(options)
	require.NoError(t, err)
	require.Contains(t, string(data), "kind: ip")
	require.Contains(t, string(data), "value: 255.255.255.0")

	parsed, err := UnmarshalOptionMapYAML(data)
	require.NoError(t, err)
	require.Equal(t, options, parsed)
}

// Test serializing the option map to JSON and parsing it back.
func TestMarshalOptionMapJSON(t *testing.T) {
	options := dhcpmodel.OptionMap{
		119: dhcpmodel.DomainListValue{"example.org"},
		51:  dhcpmodel.Uint32Value(7200),
		15:  dhcpmodel.StringValue("lab"),
		60:  dhcpmodel.Base64Value("AQID"),
	}
	data, err := MarshalOptionMapJSON(options)
	require.NoError(t, err)
	require.Contains(t, string(data), `"kind": "domain_list"`)

	parsed, err := UnmarshalOptionMapJSON(data)
	require.NoError(t, err)
	require.Equal(t, options, parsed)
}

// Test that the option set is assembled while parsing and serialized
// in the normalized form.
func TestOptionSetYAML(t *testing.T) {
	var wrapper struct {
		Values *OptionSet `yaml:"values"`
	}
	document := `
values:
  1:
    kind: ip
    value: 255.255.255.0
  60:
    kind: b64
    value: AQID
`
	require.NoError(t, yaml.Unmarshal([]byte(document), &wrapper))
	require.NotNil(t, wrapper.Values)
	options := wrapper.Values.Get()
	require.Equal(t, []byte{255, 255, 255, 0}, options[1])
	require.Equal(t, []byte{1, 2, 3}, options[60])

	data, err := yaml.Marshal(wrapper)
	require.NoError(t, err)
	require.Contains(t, string(data), "kind: hex")
	require.Contains(t, string(data), "010203")
}

// Test that the option set reports the encode errors.
func TestOptionSetJSONMalformed(t *testing.T) {
	var set OptionSet
	err := set.UnmarshalJSON([]byte(`{"60": {"kind": "b64", "value": "not-valid-base64!"}}`))
	var malformedErr *dhcpmodel.MalformedValueError
	require.True(t, errors.As(err, &malformedErr))
	require.EqualValues(t, 60, malformedErr.Code)
}

// Test that the option set is serialized to JSON in the normalized form.
func TestOptionSetMarshalJSON(t *testing.T) {
	set := NewOptionSet(dhcpv4.Options{26: []byte{0x05, 0xdc}})
	data, err := json.Marshal(struct {
		Values *OptionSet `json:"values"`
	}{set})
	require.NoError(t, err)
	require.JSONEq(t, `{"values": {"26": {"kind": "u16", "value": 1500}}}`, string(data))
}

// Test that a nil option set returns empty options and serializes to
// an empty document.
func TestNilOptionSet(t *testing.T) {
	var set *OptionSet
	require.Empty(t, set.Get())

	data, err := set.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))

	document, err := set.MarshalYAML()
	require.NoError(t, err)
	require.Empty(t, document)
}
