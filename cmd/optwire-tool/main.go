package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"isc.org/optwire"
	dhcp4config "isc.org/optwire/appcfg/dhcp4"
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
	wireutil "isc.org/optwire/util"
)

// Output formats of the decoded option maps.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// Execute encode command. It reads the option map document, encodes it
// into the option stream and prints the stream as hex digits.
func runEncode(c *cli.Context) error {
	path := c.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read the options file %s", path)
	}
	var options dhcpmodel.OptionMap
	if dhcp4config.IsJSONDocument(path) {
		options, err = dhcp4config.UnmarshalOptionMapJSON(data)
	} else {
		options, err = dhcp4config.UnmarshalOptionMapYAML(data)
	}
	if err != nil {
		return err
	}
	encoded, err := dhcp4config.Encode(options)
	if err != nil {
		return err
	}
	// Check that the encoded options are accepted by the decoder.
	if _, err = dhcp4config.NewCanonicalDecoder().DecodeOptions(encoded); err != nil {
		return dhcp4config.NewBridgeDecodeError(err)
	}
	log.WithFields(log.Fields{
		"file":    path,
		"options": len(options),
		"length":  len(encoded),
	}).Debug("Encoded options")
	_, err = fmt.Fprintln(c.App.Writer, hex.EncodeToString(encoded))
	return errors.WithStack(err)
}

// Execute decode command. It parses the option stream given as hex
// digits and prints the normalized option map.
func runDecode(c *cli.Context) error {
	data, err := dhcpmodel.HexValue(c.String("hex")).Bytes()
	if err != nil {
		return err
	}
	canonical, err := dhcp4config.NewCanonicalDecoder().DecodeOptions(data)
	if err != nil {
		return err
	}
	options := dhcp4config.Normalize(canonical)

	var document []byte
	switch c.String("format") {
	case formatYAML:
		document, err = dhcp4config.MarshalOptionMapYAML(options)
	case formatJSON:
		document, err = dhcp4config.MarshalOptionMapJSON(options)
		document = append(document, '\n')
	default:
		return errors.Errorf("unsupported output format %s", c.String("format"))
	}
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(document)
	return errors.WithStack(err)
}

// Execute check-config command. It loads the configuration file and
// reports whether it is valid.
func runCheckConfig(c *cli.Context) error {
	path := c.String("file")
	config, err := dhcp4config.LoadConfig(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "Configuration file %s is valid (%d networks)\n", path, len(config.Networks))
	return errors.WithStack(err)
}

// Prepare urfave cli app with all flags and commands defined.
func setupApp() *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, c.App.Version)
	}

	cli.HelpFlag = &cli.BoolFlag{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   "Show help",
	}

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version",
	}

	fileFlag := &cli.StringFlag{
		Name:     "file",
		Usage:    "The YAML or JSON document location; the format is selected by the file extension",
		Required: true,
		Aliases:  []string{"f"},
	}

	app := &cli.App{
		Name:  "Optwire Tool",
		Usage: "A tool for converting DHCPv4 options between documents and wire format.",
		Description: `The tool operates on the DHCPv4 option maps in which each option is
   specified by its code, the kind of its value and the value itself:

   - Encoding - it renders the option map document into the option stream;

   - Decoding - it converts the option stream back into the option map document;

   - Configuration Check - it validates the network configuration file including
     all option maps it contains.`,
		Version:  optwire.Version,
		HelpName: "optwire-tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Logging level. Allowed values: are DEBUG, INFO, WARN, ERROR",
				Value:   "INFO",
				EnvVars: []string{"OPTWIRE_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return wireutil.SetLogLevel(c.String("log-level"))
		},
		Commands: []*cli.Command{
			{
				Name:        "encode",
				Usage:       "Encode the option map document into the option stream",
				UsageText:   "optwire-tool encode -f filename",
				Description: ``,
				Flags:       []cli.Flag{fileFlag},
				Category:    "Encoding",
				Action:      runEncode,
			},
			{
				Name:        "decode",
				Usage:       "Decode the option stream into the option map document",
				UsageText:   "optwire-tool decode -x hex [--format yaml|json]",
				Description: ``,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "hex",
						Usage:    "The option stream as hex digits, optionally separated by colons or spaces",
						Required: true,
						Aliases:  []string{"x"},
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "The output document format; it can be one of 'yaml', 'json'",
						Value: formatYAML,
					},
				},
				Category: "Decoding",
				Action:   runDecode,
			},
			{
				Name:        "check-config",
				Usage:       "Validate the network configuration file",
				UsageText:   "optwire-tool check-config -f filename",
				Description: ``,
				Flags:       []cli.Flag{fileFlag},
				Category:    "Configuration Check",
				Action:      runCheckConfig,
			},
		},
	}

	return app
}

func main() {
	// Setup logging
	wireutil.SetupLogging()

	app := setupApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
