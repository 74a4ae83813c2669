package dhcp4config

import (
	"encoding/json"
	"net"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
	"muzzammil.xyz/jsonc"
)

// Option value as specified in the authoring document, i.e. an object
// with the kind discriminator and the value payload. The payload is
// decoded lazily, when the kind is known.
type taggedValue struct {
	Kind   dhcpmodel.OptionKind
	decode func(out any) error
}

// Option value written to the authoring document.
type documentValue struct {
	Kind  dhcpmodel.OptionKind `json:"kind" yaml:"kind"`
	Value any                  `json:"value" yaml:"value"`
}

// Parses the tagged value from JSON.
func (t *taggedValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}
	t.Kind = raw.Kind
	t.decode = func(out any) error {
		if len(raw.Value) == 0 {
			return errors.New("value is not specified")
		}
		return json.Unmarshal(raw.Value, out)
	}
	return nil
}

// Parses the tagged value from YAML.
func (t *taggedValue) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Kind  string    `yaml:"kind"`
		Value yaml.Node `yaml:"value"`
	}
	if err := node.Decode(&raw); err != nil {
		return errors.WithStack(err)
	}
	t.Kind = raw.Kind
	t.decode = func(out any) error {
		if raw.Value.Kind == 0 {
			return errors.New("value is not specified")
		}
		return raw.Value.Decode(out)
	}
	return nil
}

// Converts the authoring document representation into the option map.
func toOptionMap(values map[uint8]*taggedValue, depth int) (dhcpmodel.OptionMap, error) {
	options := make(dhcpmodel.OptionMap, len(values))
	for code, tagged := range values {
		if tagged == nil {
			return nil, dhcpmodel.NewMalformedValueError(code, "", errors.New("option value is not specified"))
		}
		value, err := tagged.toOptionValue(code, depth)
		if err != nil {
			return nil, err
		}
		options[code] = value
	}
	return options, nil
}

// Decodes the payload according to the kind. It returns the
// MalformedValueError if the payload doesn't match the kind.
func (t *taggedValue) toOptionValue(code uint8, depth int) (dhcpmodel.OptionValue, error) {
	var (
		value dhcpmodel.OptionValue
		err   error
	)
	switch t.Kind {
	case dhcpmodel.IPKind:
		var s string
		if err = t.decode(&s); err == nil {
			var ip net.IP
			if ip, err = parseIPv4(s); err == nil {
				value = dhcpmodel.IPValue(ip)
			}
		}
	case dhcpmodel.IPListKind:
		var list []string
		if err = t.decode(&list); err == nil {
			ips := dhcpmodel.IPListValue{}
			for _, s := range list {
				var ip net.IP
				if ip, err = parseIPv4(s); err != nil {
					break
				}
				ips = append(ips, ip)
			}
			value = ips
		}
	case dhcpmodel.DomainListKind:
		var names []string
		if err = t.decode(&names); err == nil {
			value = dhcpmodel.DomainListValue(names)
		}
	case dhcpmodel.Uint8Kind:
		var n uint8
		if err = t.decode(&n); err == nil {
			value = dhcpmodel.Uint8Value(n)
		}
	case dhcpmodel.Uint16Kind:
		var n uint16
		if err = t.decode(&n); err == nil {
			value = dhcpmodel.Uint16Value(n)
		}
	case dhcpmodel.Uint32Kind:
		var n uint32
		if err = t.decode(&n); err == nil {
			value = dhcpmodel.Uint32Value(n)
		}
	case dhcpmodel.Int32Kind:
		var n int32
		if err = t.decode(&n); err == nil {
			value = dhcpmodel.Int32Value(n)
		}
	case dhcpmodel.BoolKind:
		var b bool
		if err = t.decode(&b); err == nil {
			value = dhcpmodel.BoolValue(b)
		}
	case dhcpmodel.StringKind:
		var s string
		if err = t.decode(&s); err == nil {
			value = dhcpmodel.StringValue(s)
		}
	case dhcpmodel.Base64Kind:
		var s string
		if err = t.decode(&s); err == nil {
			value = dhcpmodel.Base64Value(s)
		}
	case dhcpmodel.HexKind:
		var s string
		if err = t.decode(&s); err == nil {
			value = dhcpmodel.HexValue(s)
		}
	case dhcpmodel.SubOptionKind:
		if depth >= dhcpmodel.MaxSubOptionDepth {
			err = errors.Errorf("sub-options nested deeper than %d levels", dhcpmodel.MaxSubOptionDepth)
			break
		}
		var nested map[uint8]*taggedValue
		if err = t.decode(&nested); err == nil {
			var sub dhcpmodel.OptionMap
			if sub, err = toOptionMap(nested, depth+1); err != nil {
				// The nested error already identifies the sub-option.
				return nil, err
			}
			value = dhcpmodel.SubOptionValue(sub)
		}
	default:
		err = errors.Errorf("unknown option kind %q", t.Kind)
	}
	if err != nil {
		return nil, dhcpmodel.NewMalformedValueError(code, t.Kind, err)
	}
	if depth == 0 {
		if err := dhcpmodel.Validate(code, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Parses an IPv4 address.
func parseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return nil, errors.Errorf("%s is not a valid IPv4 address", s)
	}
	return ip.To4(), nil
}

// Converts the option map into its authoring document representation.
func toDocument(options dhcpmodel.OptionMap) map[uint8]documentValue {
	document := make(map[uint8]documentValue, len(options))
	for code, value := range options {
		document[code] = toDocumentValue(value)
	}
	return document
}

func toDocumentValue(value dhcpmodel.OptionValue) documentValue {
	var payload any
	switch v := value.(type) {
	case dhcpmodel.IPValue:
		payload = net.IP(v).String()
	case dhcpmodel.IPListValue:
		list := make([]string, 0, len(v))
		for _, ip := range v {
			list = append(list, ip.String())
		}
		payload = list
	case dhcpmodel.DomainListValue:
		payload = []string(v)
	case dhcpmodel.Uint8Value:
		payload = uint8(v)
	case dhcpmodel.Uint16Value:
		payload = uint16(v)
	case dhcpmodel.Uint32Value:
		payload = uint32(v)
	case dhcpmodel.Int32Value:
		payload = int32(v)
	case dhcpmodel.BoolValue:
		payload = bool(v)
	case dhcpmodel.StringValue:
		payload = string(v)
	case dhcpmodel.Base64Value:
		payload = string(v)
	case dhcpmodel.HexValue:
		payload = string(v)
	case dhcpmodel.SubOptionValue:
		payload = toDocument(dhcpmodel.OptionMap(v))
	}
	return documentValue{
		Kind:  value.GetKind(),
		Value: payload,
	}
}

// Parses the option map from a JSON document. The document may
// contain comments.
func UnmarshalOptionMapJSON(data []byte) (dhcpmodel.OptionMap, error) {
	var values map[uint8]*taggedValue
	if err := jsonc.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "problem parsing the options JSON document")
	}
	return toOptionMap(values, 0)
}

// Parses the option map from a YAML document.
func UnmarshalOptionMapYAML(data []byte) (dhcpmodel.OptionMap, error) {
	var values map[uint8]*taggedValue
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "problem parsing the options YAML document")
	}
	return toOptionMap(values, 0)
}

// Serializes the option map to a JSON document.
func MarshalOptionMapJSON(options dhcpmodel.OptionMap) ([]byte, error) {
	data, err := json.MarshalIndent(toDocument(options), "", "  ")
	return data, errors.Wrap(err, "failed to serialize options to JSON")
}

// Serializes the option map to a YAML document.
func MarshalOptionMapYAML(options dhcpmodel.OptionMap) ([]byte, error) {
	data, err := yaml.Marshal(toDocument(options))
	return data, errors.Wrap(err, "failed to serialize options to YAML")
}

// Options held in the configuration. In the authoring document they
// are specified as the option map. After parsing they are kept in
// the canonical form produced by the assembler.
type OptionSet struct {
	options dhcpv4.Options
}

// Creates an option set from the canonical options.
func NewOptionSet(options dhcpv4.Options) *OptionSet {
	return &OptionSet{
		options: options,
	}
}

// Returns the canonical options.
func (s *OptionSet) Get() dhcpv4.Options {
	if s == nil {
		return dhcpv4.Options{}
	}
	return s.options
}

// Parses the option map from JSON and assembles the canonical options.
func (s *OptionSet) UnmarshalJSON(data []byte) error {
	var values map[uint8]*taggedValue
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.WithStack(err)
	}
	return s.assemble(values)
}

// Parses the option map from YAML and assembles the canonical options.
func (s *OptionSet) UnmarshalYAML(node *yaml.Node) error {
	var values map[uint8]*taggedValue
	if err := node.Decode(&values); err != nil {
		return errors.WithStack(err)
	}
	return s.assemble(values)
}

func (s *OptionSet) assemble(values map[uint8]*taggedValue) error {
	options, err := toOptionMap(values, 0)
	if err != nil {
		return err
	}
	s.options, err = Assemble(options)
	return err
}

// Serializes the normalized options to JSON.
func (s *OptionSet) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(toDocument(Normalize(s.Get())))
	return data, errors.WithStack(err)
}

// Serializes the normalized options to YAML.
func (s *OptionSet) MarshalYAML() (any, error) {
	return toDocument(Normalize(s.Get())), nil
}
