package dhcp4config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	wireutil "isc.org/optwire/util"
	"muzzammil.xyz/jsonc"
)

// DHCPv4 server configuration. The networks are keyed by their
// IPv4 CIDR, e.g. 192.0.2.0/24.
type Config struct {
	Networks map[string]*Net `json:"networks" yaml:"networks"`
}

// Checks if the document at the specified path should be parsed as
// JSON. Other documents are parsed as YAML.
func IsJSONDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	default:
		return false
	}
}

// Parses the configuration from a JSON document. The document may
// contain comments. All option maps are encoded and decoded into the
// canonical form while parsing.
func NewConfigFromJSON(data []byte) (*Config, error) {
	var config Config
	if err := jsonc.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "problem parsing the configuration JSON document")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Parses the configuration from a YAML document.
func NewConfigFromYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "problem parsing the configuration YAML document")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Reads and parses the configuration file. The format is selected by
// the file extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the configuration file %s", path)
	}
	var config *Config
	if IsJSONDocument(path) {
		config, err = NewConfigFromJSON(data)
	} else {
		config, err = NewConfigFromYAML(data)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid configuration file %s", path)
	}
	config.logSummary()
	return config, nil
}

// Checks the configuration of all networks.
func (c *Config) Validate() error {
	for _, name := range c.getNetworkNames() {
		network, err := wireutil.ParseIPv4Network(name)
		if err != nil {
			return err
		}
		n := c.Networks[name]
		if n == nil {
			return errors.Errorf("network %s has no configuration", name)
		}
		if err := n.validate(network); err != nil {
			return errors.WithMessagef(err, "invalid configuration of the network %s", name)
		}
	}
	return nil
}

// Returns the network names in the lexical order.
func (c *Config) getNetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Config) logSummary() {
	for _, name := range c.getNetworkNames() {
		n := c.Networks[name]
		network, _ := wireutil.ParseIPv4Network(name)
		if len(n.Ranges) == 0 && len(n.Reservations) == 0 {
			log.WithField("network", name).Warn("Network has neither ranges nor reservations")
		}
		log.WithFields(log.Fields{
			"network":       name,
			"size":          wireutil.IPv4NetworkSize(network),
			"ranges":        len(n.Ranges),
			"reservations":  len(n.Reservations),
			"authoritative": n.IsAuthoritative(),
		}).Info("Loaded network configuration")
	}
}
