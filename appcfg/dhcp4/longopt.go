package dhcp4config

import (
	"math"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/u-root/uio/uio"
)

// Maximum payload length of a single option record.
const maxOptionLength = math.MaxUint8

// Writes a list of fixed-size elements under the option code. If the
// payload exceeds the maximum option length the list is split into
// consecutive records with the same code (RFC 3396). Each record holds
// as many whole elements as fit, so an element never straddles two
// records. The write function must emit exactly size bytes. An empty
// list yields a single zero-length record.
func writeLongOptionChunks[T any](buf *uio.Lexer, code uint8, size int, elems []T, write func(T, *uio.Lexer)) {
	if len(elems) == 0 {
		buf.Write8(code)
		buf.Write8(0)
		return
	}
	perRecord := maxOptionLength / size
	for len(elems) > 0 {
		n := min(len(elems), perRecord)
		buf.Write8(code)
		buf.Write8(uint8(n * size))
		for _, elem := range elems[:n] {
			write(elem, buf)
		}
		elems = elems[n:]
	}
}

// Writes binary data under the option code, splitting it into records
// of at most 255 bytes.
func writeLongOptionBytes(buf *uio.Lexer, code uint8, data []byte) {
	dhcpv4.Options{code: data}.Marshal(buf)
}
