package wireutil

import (
	"strings"
	"unicode"

	"github.com/insomniacslk/dhcp/rfc1035label"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// Maximum length of a domain name in the wire format, including the
// root label.
const maxDomainNameWireLength = 255

// Converts a domain name to the form specified in RFC 1035. It is output
// as a collection of labels, each preceded with a label length, and
// terminated with the root label. The name may or may not include the
// terminating dot.
func PackDomainName(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, errors.New("failed to parse an empty domain name")
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return nil, errors.Errorf("domain name %q must not contain whitespace", name)
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return nil, errors.Errorf("invalid domain name %q", name)
	}
	buf := make([]byte, maxDomainNameWireLength+1)
	off, err := dns.PackDomainName(dns.Fqdn(name), buf, 0, nil, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode domain name %s", name)
	}
	return buf[:off], nil
}

// Parses a sequence of domain names in the RFC 1035 wire format. The
// compression pointers are followed. The names are returned without
// the terminating dot, except the root name which is returned as ".".
func UnpackDomainNames(data []byte) ([]string, error) {
	labels, err := rfc1035label.FromBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse domain names")
	}
	names := labels.Labels
	for i, name := range names {
		if name == "" {
			names[i] = "."
		}
	}
	return names, nil
}
