package dhcp4config

import (
	"net"
	"slices"

	"github.com/pkg/errors"
	"github.com/u-root/uio/uio"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
)

// Renders the options into the wire format and terminates the stream
// with the End option. The options are written in the ascending order
// of their codes. On failure no data is returned and the error is
// an EncodeError identifying the top level option code.
func Encode(options dhcpmodel.OptionMap) ([]byte, error) {
	buf := uio.NewBigEndianBuffer(nil)
	for _, code := range sortedCodes(options) {
		if err := writeOption(buf, code, options[code], 0); err != nil {
			return nil, NewEncodeError(code, err)
		}
	}
	buf.Write8(dhcpmodel.EndOptionCode)
	return buf.Data(), nil
}

// Returns the option codes in the ascending order.
func sortedCodes[M ~map[uint8]V, V any](options M) []uint8 {
	codes := make([]uint8, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Writes a single option. The encapsulated sub-options are written
// recursively into a nested buffer which becomes the option payload.
func writeOption(buf *uio.Lexer, code uint8, value dhcpmodel.OptionValue, depth int) error {
	if value == nil {
		return dhcpmodel.NewMalformedValueError(code, "", errors.New("option value is not specified"))
	}
	if code == dhcpmodel.PadOptionCode || code == dhcpmodel.EndOptionCode {
		return dhcpmodel.NewMalformedValueError(code, value.GetKind(), errors.Errorf("option code %d is reserved", code))
	}
	switch v := value.(type) {
	case dhcpmodel.IPValue:
		ip, err := v.Bytes()
		if err != nil {
			return dhcpmodel.NewMalformedValueError(code, v.GetKind(), err)
		}
		buf.Write8(code)
		buf.Write8(net.IPv4len)
		buf.WriteBytes(ip)
	case dhcpmodel.IPListValue:
		ips := make([][]byte, 0, len(v))
		for _, ip := range v {
			ip4, err := dhcpmodel.IPValue(ip).Bytes()
			if err != nil {
				return dhcpmodel.NewMalformedValueError(code, v.GetKind(), err)
			}
			ips = append(ips, ip4)
		}
		writeLongOptionChunks(buf, code, net.IPv4len, ips, func(ip []byte, b *uio.Lexer) {
			b.WriteBytes(ip)
		})
	case dhcpmodel.DomainListValue:
		data, err := v.Bytes()
		if err != nil {
			return dhcpmodel.NewMalformedValueError(code, v.GetKind(), err)
		}
		writeLongOptionBytes(buf, code, data)
	case dhcpmodel.Uint8Value:
		buf.Write8(code)
		buf.Write8(1)
		buf.Write8(uint8(v))
	case dhcpmodel.BoolValue:
		buf.Write8(code)
		buf.Write8(1)
		if v {
			buf.Write8(1)
		} else {
			buf.Write8(0)
		}
	case dhcpmodel.Uint16Value:
		buf.Write8(code)
		buf.Write8(2)
		buf.Write16(uint16(v))
	case dhcpmodel.Uint32Value:
		buf.Write8(code)
		buf.Write8(4)
		buf.Write32(uint32(v))
	case dhcpmodel.Int32Value:
		buf.Write8(code)
		buf.Write8(4)
		buf.Write32(uint32(v))
	case dhcpmodel.StringValue:
		writeLongOptionBytes(buf, code, []byte(v))
	case dhcpmodel.Base64Value:
		data, err := v.Bytes()
		if err != nil {
			return dhcpmodel.NewMalformedValueError(code, v.GetKind(), err)
		}
		writeLongOptionBytes(buf, code, data)
	case dhcpmodel.HexValue:
		data, err := v.Bytes()
		if err != nil {
			return dhcpmodel.NewMalformedValueError(code, v.GetKind(), err)
		}
		writeLongOptionBytes(buf, code, data)
	case dhcpmodel.SubOptionValue:
		if depth >= dhcpmodel.MaxSubOptionDepth {
			return dhcpmodel.NewMalformedValueError(code, v.GetKind(),
				errors.Errorf("sub-options nested deeper than %d levels", dhcpmodel.MaxSubOptionDepth))
		}
		data, err := encodeSubOptions(v, depth+1)
		if err != nil {
			return err
		}
		writeLongOptionBytes(buf, code, data)
	default:
		return dhcpmodel.NewMalformedValueError(code, value.GetKind(), errors.Errorf("unsupported option value type %T", value))
	}
	return nil
}

// Renders the sub-options into a nested option stream. The nested
// stream is not terminated with the End option.
func encodeSubOptions(options dhcpmodel.SubOptionValue, depth int) ([]byte, error) {
	buf := uio.NewBigEndianBuffer(nil)
	for _, code := range sortedCodes(options) {
		if err := writeOption(buf, code, options[code], depth); err != nil {
			return nil, err
		}
	}
	return buf.Data(), nil
}
