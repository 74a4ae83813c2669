package dhcp4config

import (
	"bytes"
	"encoding/hex"
	"net"
	"unicode/utf8"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/u-root/uio/uio"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
	wireutil "isc.org/optwire/util"
)

// Converts the canonical option set back into the option map. Each
// option is classified by the shape of its value, so the options
// carrying the same kind of data get the same value kind. The options
// without a standard definition and the options whose payload doesn't
// match their definition are returned as hex values. The Pad and End
// options are skipped. This function never fails.
func Normalize(options dhcpv4.Options) dhcpmodel.OptionMap {
	return NewNormalizer().Normalize(options)
}

// Converts the canonical option sets into option maps using the
// standard option definitions.
type Normalizer struct {
	lookup DHCPStdOptionDefinitionLookup
}

// Creates a normalizer using the standard option definitions.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		lookup: NewStdDHCPOptionDefinitionLookup(),
	}
}

// Converts the canonical option set into the option map.
func (n *Normalizer) Normalize(options dhcpv4.Options) dhcpmodel.OptionMap {
	normalized := make(dhcpmodel.OptionMap)
	for code, payload := range options {
		if code == dhcpmodel.PadOptionCode || code == dhcpmodel.EndOptionCode {
			continue
		}
		normalized[code] = n.normalizeOption(code, payload)
	}
	return normalized
}

func (n *Normalizer) normalizeOption(code uint8, payload []byte) dhcpmodel.OptionValue {
	if def := n.lookup.FindByCode(code); def != nil {
		value, err := parseOptionValue(def.GetKind(), payload)
		if err == nil {
			return value
		}
		log.WithFields(log.Fields{
			"code": code,
			"name": def.GetName(),
			"kind": def.GetKind(),
		}).WithError(err).Debug("Option payload does not match its definition; using hex form")
	}
	return hexValue(payload)
}

// Returns the payload as a string of hexadecimal digits. An empty
// payload yields an empty string.
func hexValue(payload []byte) dhcpmodel.HexValue {
	return dhcpmodel.HexValue(hex.EncodeToString(payload))
}

// Parses the option payload as a value of the specified kind. It
// returns an error if the payload can't be represented by this kind
// without altering its wire form.
func parseOptionValue(kind dhcpmodel.OptionKind, payload []byte) (dhcpmodel.OptionValue, error) {
	buf := uio.NewBigEndianBuffer(payload)
	var value dhcpmodel.OptionValue
	switch kind {
	case dhcpmodel.IPKind:
		value = dhcpmodel.IPValue(net.IP(buf.CopyN(net.IPv4len)))
	case dhcpmodel.IPListKind:
		ips := dhcpmodel.IPListValue{}
		for buf.Has(net.IPv4len) {
			ips = append(ips, net.IP(buf.CopyN(net.IPv4len)))
		}
		value = ips
	case dhcpmodel.Uint8Kind:
		value = dhcpmodel.Uint8Value(buf.Read8())
	case dhcpmodel.BoolKind:
		b := buf.Read8()
		if b > 1 {
			return nil, errors.Errorf("invalid boolean value %d", b)
		}
		value = dhcpmodel.BoolValue(b == 1)
	case dhcpmodel.Uint16Kind:
		value = dhcpmodel.Uint16Value(buf.Read16())
	case dhcpmodel.Uint32Kind:
		value = dhcpmodel.Uint32Value(buf.Read32())
	case dhcpmodel.Int32Kind:
		value = dhcpmodel.Int32Value(int32(buf.Read32()))
	case dhcpmodel.StringKind:
		if !utf8.Valid(payload) {
			return nil, errors.New("string is not valid UTF-8")
		}
		return dhcpmodel.StringValue(payload), nil
	case dhcpmodel.DomainListKind:
		return parseDomainList(payload)
	case dhcpmodel.SubOptionKind:
		return parseSubOptions(payload)
	default:
		return nil, errors.Errorf("unsupported option kind %s", kind)
	}
	if err := buf.FinError(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s payload of length %d", kind, len(payload))
	}
	return value, nil
}

// Parses a list of domain names. The list is rejected when encoding
// the parsed names doesn't reproduce the payload, e.g. when it uses
// compression pointers.
func parseDomainList(payload []byte) (dhcpmodel.OptionValue, error) {
	names, err := wireutil.UnpackDomainNames(payload)
	if err != nil {
		return nil, err
	}
	value := dhcpmodel.DomainListValue(names)
	encoded, err := value.Bytes()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(encoded, payload) {
		return nil, errors.New("domain list is not in the canonical form")
	}
	return value, nil
}

// Parses encapsulated sub-options. The sub-options are returned as
// hex values because their codes have vendor specific meaning. The
// payload is rejected when encoding the sub-options doesn't reproduce
// it, e.g. when the payload is opaque data rather than an option stream.
func parseSubOptions(payload []byte) (dhcpmodel.OptionValue, error) {
	nested := make(dhcpv4.Options)
	if err := nested.FromBytes(payload); err != nil {
		return nil, errors.Wrap(err, "payload is not an option stream")
	}
	value := dhcpmodel.SubOptionValue{}
	for code, data := range nested {
		value[code] = hexValue(data)
	}
	encoded, err := encodeSubOptions(value, 1)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(encoded, payload) {
		return nil, errors.New("sub-options are not in the canonical form")
	}
	return value, nil
}
