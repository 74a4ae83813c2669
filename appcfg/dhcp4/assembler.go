package dhcp4config

import (
	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/pkg/errors"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
	wireutil "isc.org/optwire/util"
)

// Interface to the decoder converting an option stream into the
// canonical option set.
type OptionsDecoder interface {
	// Parses the option stream terminated with the End option.
	DecodeOptions(data []byte) (dhcpv4.Options, error)
}

// Decoder parsing the option stream with the DHCPv4 library. Besides
// the TLV grammar it verifies that the options having a standard
// definition carry payloads of the expected shape.
type canonicalDecoder struct {
	lookup DHCPStdOptionDefinitionLookup
}

// Creates the decoder used by the assembler by default.
func NewCanonicalDecoder() OptionsDecoder {
	return &canonicalDecoder{
		lookup: NewStdDHCPOptionDefinitionLookup(),
	}
}

// Parses the option stream. The records repeating the same code are
// concatenated into a single option.
func (d *canonicalDecoder) DecodeOptions(data []byte) (dhcpv4.Options, error) {
	options := make(dhcpv4.Options)
	if err := options.FromBytes(data); err != nil {
		return nil, errors.Wrap(err, "failed to parse the option stream")
	}
	for _, code := range sortedCodes(options) {
		def := d.lookup.FindByCode(code)
		if def == nil {
			continue
		}
		if err := checkPayloadShape(def.GetKind(), options[code]); err != nil {
			return nil, errors.WithMessagef(err, "invalid payload of the %s option (%d)", def.GetName(), code)
		}
	}
	return options, nil
}

// Checks that the payload has the length or the structure required by
// the option kind. The kinds with a free-form payload are accepted as is.
func checkPayloadShape(kind dhcpmodel.OptionKind, payload []byte) error {
	expected := -1
	switch kind {
	case dhcpmodel.IPKind, dhcpmodel.Uint32Kind, dhcpmodel.Int32Kind:
		expected = 4
	case dhcpmodel.Uint16Kind:
		expected = 2
	case dhcpmodel.Uint8Kind, dhcpmodel.BoolKind:
		expected = 1
	case dhcpmodel.IPListKind:
		if len(payload)%4 != 0 {
			return errors.Errorf("length %d is not a multiple of 4", len(payload))
		}
	case dhcpmodel.DomainListKind:
		if _, err := wireutil.UnpackDomainNames(payload); err != nil {
			return err
		}
	}
	if expected >= 0 && len(payload) != expected {
		return errors.Errorf("expected length %d, got %d", expected, len(payload))
	}
	return nil
}

// Converts the option map into the canonical option set. The options
// are encoded into a single option stream which is then parsed by the
// decoder, so the result is interpreted exactly as options received
// from the network would be.
type Assembler struct {
	decoder OptionsDecoder
}

// Creates the assembler using the canonical decoder.
func NewAssembler() *Assembler {
	return NewAssemblerWithDecoder(NewCanonicalDecoder())
}

// Creates the assembler using the specified decoder.
func NewAssemblerWithDecoder(decoder OptionsDecoder) *Assembler {
	return &Assembler{
		decoder: decoder,
	}
}

// Encodes the options and decodes them into the canonical option set.
// It returns an EncodeError when any value can't be encoded and a
// BridgeDecodeError when the decoder rejects the encoded stream. No
// partial result is returned on error.
func (a *Assembler) Assemble(options dhcpmodel.OptionMap) (dhcpv4.Options, error) {
	data, err := Encode(options)
	if err != nil {
		return nil, err
	}
	decoded, err := a.decoder.DecodeOptions(data)
	if err != nil {
		return nil, NewBridgeDecodeError(err)
	}
	return decoded, nil
}

// Converts the option map into the canonical option set using the
// default assembler.
func Assemble(options dhcpmodel.OptionMap) (dhcpv4.Options, error) {
	return NewAssembler().Assemble(options)
}
