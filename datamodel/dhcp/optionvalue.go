package dhcpmodel

import (
	"encoding/base64"
	"encoding/hex"
	"net"
	"strings"

	"github.com/pkg/errors"
	wireutil "isc.org/optwire/util"
)

// Kind of a tagged option value. It is used as the discriminator
// in the authoring documents.
type OptionKind = string

// Supported option value kinds.
const (
	IPKind         OptionKind = "ip"
	IPListKind     OptionKind = "ip_list"
	DomainListKind OptionKind = "domain_list"
	Uint8Kind      OptionKind = "u8"
	Uint16Kind     OptionKind = "u16"
	Uint32Kind     OptionKind = "u32"
	Int32Kind      OptionKind = "i32"
	BoolKind       OptionKind = "bool"
	StringKind     OptionKind = "str"
	Base64Kind     OptionKind = "b64"
	HexKind        OptionKind = "hex"
	SubOptionKind  OptionKind = "sub_option"
)

// Option codes which can't carry a value. They mark padding and
// the end of an option stream.
const (
	PadOptionCode uint8 = 0
	EndOptionCode uint8 = 255
)

// Maximum nesting level of the encapsulated sub-options. The top level
// option map has depth 0.
const MaxSubOptionDepth = 8

// A tagged option value. Exactly one implementation exists for each
// option kind and the kind determines the wire encoding.
type OptionValue interface {
	// Returns the option value kind.
	GetKind() OptionKind
	isOptionValue()
}

// Mapping of the option codes to the tagged values. It is used for
// the top level options and for the encapsulated sub-options.
type OptionMap map[uint8]OptionValue

// A single IPv4 address.
type IPValue net.IP

// A list of IPv4 addresses.
type IPListValue []net.IP

// A list of domain names.
type DomainListValue []string

// Unsigned 8-bit integer.
type Uint8Value uint8

// Unsigned 16-bit integer.
type Uint16Value uint16

// Unsigned 32-bit integer.
type Uint32Value uint32

// Signed 32-bit integer.
type Int32Value int32

// Boolean encoded as a single byte.
type BoolValue bool

// UTF-8 string.
type StringValue string

// Binary data specified as a base64 string.
type Base64Value string

// Binary data specified as a string of hexadecimal digits.
type HexValue string

// Encapsulated sub-options.
type SubOptionValue OptionMap

func (IPValue) GetKind() OptionKind         { return IPKind }
func (IPListValue) GetKind() OptionKind     { return IPListKind }
func (DomainListValue) GetKind() OptionKind { return DomainListKind }
func (Uint8Value) GetKind() OptionKind      { return Uint8Kind }
func (Uint16Value) GetKind() OptionKind     { return Uint16Kind }
func (Uint32Value) GetKind() OptionKind     { return Uint32Kind }
func (Int32Value) GetKind() OptionKind      { return Int32Kind }
func (BoolValue) GetKind() OptionKind       { return BoolKind }
func (StringValue) GetKind() OptionKind     { return StringKind }
func (Base64Value) GetKind() OptionKind     { return Base64Kind }
func (HexValue) GetKind() OptionKind        { return HexKind }
func (SubOptionValue) GetKind() OptionKind  { return SubOptionKind }

func (IPValue) isOptionValue()         {}
func (IPListValue) isOptionValue()     {}
func (DomainListValue) isOptionValue() {}
func (Uint8Value) isOptionValue()      {}
func (Uint16Value) isOptionValue()     {}
func (Uint32Value) isOptionValue()     {}
func (Int32Value) isOptionValue()      {}
func (BoolValue) isOptionValue()       {}
func (StringValue) isOptionValue()     {}
func (Base64Value) isOptionValue()     {}
func (HexValue) isOptionValue()        {}
func (SubOptionValue) isOptionValue()  {}

// Returns the address in the 4-byte form or an error if it is not
// an IPv4 address.
func (v IPValue) Bytes() ([]byte, error) {
	ip4 := net.IP(v).To4()
	if ip4 == nil {
		return nil, errors.Errorf("%s is not an IPv4 address", net.IP(v))
	}
	return ip4, nil
}

// Returns the decoded data. Both padded and unpadded base64 strings
// are accepted.
func (v Base64Value) Bytes() ([]byte, error) {
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(string(v), "="))
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 data")
	}
	return data, nil
}

// Returns the decoded data. The colons and spaces are allowed as
// separators between the bytes.
func (v HexValue) Bytes() ([]byte, error) {
	digits := string(v)
	for _, sep := range []string{":", " "} {
		digits = strings.ReplaceAll(digits, sep, "")
	}
	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hexadecimal data")
	}
	return data, nil
}

// Returns the domain names in the DNS wire format concatenated.
func (v DomainListValue) Bytes() ([]byte, error) {
	var data []byte
	for _, name := range v {
		packed, err := wireutil.PackDomainName(name)
		if err != nil {
			return nil, err
		}
		data = append(data, packed...)
	}
	return data, nil
}

// Checks that the value payload matches its kind. It returns
// MalformedValueError identifying the option code on failure.
func Validate(code uint8, value OptionValue) error {
	return validate(code, value, 0)
}

// Checks all values in the option map.
func (m OptionMap) Validate() error {
	for code, value := range m {
		if err := validate(code, value, 0); err != nil {
			return err
		}
	}
	return nil
}

func validate(code uint8, value OptionValue, depth int) error {
	if value == nil {
		return NewMalformedValueError(code, "", errors.New("option value is not specified"))
	}
	if code == PadOptionCode || code == EndOptionCode {
		return NewMalformedValueError(code, value.GetKind(), errors.Errorf("option code %d is reserved", code))
	}
	var err error
	switch v := value.(type) {
	case IPValue:
		_, err = v.Bytes()
	case IPListValue:
		for _, ip := range v {
			if _, err = IPValue(ip).Bytes(); err != nil {
				break
			}
		}
	case DomainListValue:
		_, err = v.Bytes()
	case Base64Value:
		_, err = v.Bytes()
	case HexValue:
		_, err = v.Bytes()
	case SubOptionValue:
		if depth >= MaxSubOptionDepth {
			err = errors.Errorf("sub-options nested deeper than %d levels", MaxSubOptionDepth)
			break
		}
		for subCode, subValue := range v {
			if err := validate(subCode, subValue, depth+1); err != nil {
				return err
			}
		}
	case Uint8Value, Uint16Value, Uint32Value, Int32Value, BoolValue, StringValue:
	default:
		err = errors.Errorf("unsupported option value type %T", value)
	}
	if err != nil {
		return NewMalformedValueError(code, value.GetKind(), err)
	}
	return nil
}
