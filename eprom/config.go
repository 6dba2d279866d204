package eprom

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ConfigFileName is the configuration file looked up in the user's home
// directory and the current directory, in that order. Settings from the
// later file override the earlier one.
const ConfigFileName = ".prompro.xml"

// Config is the resolved configuration: link settings, the EPROM type
// catalog, and the default type selected before any user interaction.
type Config struct {
	Link        LinkConfig
	Catalog     Catalog
	DefaultType string
}

// xmlConfig mirrors the .prompro.xml document:
//
//	<prompro>
//	  <serial baud="9600" device="/dev/ttyUSB0" rtscts="1"/>
//	  <eproms>
//	    <eprom type="27C256" segsize="32768">
//	      <seg use="27C256" offset="0"/>
//	    </eprom>
//	  </eproms>
//	  <defaults eprom="27C256"/>
//	</prompro>
type xmlConfig struct {
	XMLName xml.Name `xml:"prompro"`
	Serial  struct {
		Baud   int    `xml:"baud,attr"`
		Device string `xml:"device,attr"`
		RTSCTS int    `xml:"rtscts,attr"`
	} `xml:"serial"`
	Eproms []struct {
		Type    string `xml:"type,attr"`
		SegSize uint32 `xml:"segsize,attr"`
		Segs    []struct {
			Use    string `xml:"use,attr"`
			Offset uint32 `xml:"offset,attr"`
		} `xml:"seg"`
	} `xml:"eproms>eprom"`
	Defaults struct {
		Eprom string `xml:"eprom,attr"`
	} `xml:"defaults"`
}

// Load parses a .prompro.xml file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadReader parses configuration from any io.Reader.
// This is useful for testing and reading from non-file sources.
func LoadReader(r io.Reader) (*Config, error) {
	var doc xmlConfig
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid configuration XML: %w", err)
	}

	cfg := &Config{
		Link: LinkConfig{
			Device: doc.Serial.Device,
			Baud:   doc.Serial.Baud,
			RTSCTS: doc.Serial.RTSCTS != 0,
		},
		Catalog:     make(Catalog, len(doc.Eproms)),
		DefaultType: doc.Defaults.Eprom,
	}

	for _, e := range doc.Eproms {
		t := Type{
			Name:     e.Type,
			SegSize:  e.SegSize,
			Segments: make([]Segment, 0, len(e.Segs)),
		}
		for _, s := range e.Segs {
			t.Segments = append(t.Segments, Segment{Name: s.Use, Offset: s.Offset})
		}
		cfg.Catalog[t.Name] = t
	}

	return cfg, nil
}

// merge overlays non-empty settings from other onto c. Catalog entries
// accumulate; a type defined in both files takes other's definition.
func (c *Config) merge(other *Config) {
	if other.Link.Device != "" {
		c.Link.Device = other.Link.Device
	}
	if other.Link.Baud != 0 {
		c.Link.Baud = other.Link.Baud
	}
	if other.Link.RTSCTS {
		c.Link.RTSCTS = true
	}
	if other.DefaultType != "" {
		c.DefaultType = other.DefaultType
	}
	for name, t := range other.Catalog {
		c.Catalog[name] = t
	}
}

// LoadDefault reads ~/.prompro.xml and ./.prompro.xml, the current
// directory's file overriding the home one. At least one must exist
// and parse.
func LoadDefault() (*Config, error) {
	merged := &Config{Catalog: make(Catalog)}
	loaded := false

	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ConfigFileName))
	}
	paths = append(paths, ConfigFileName)

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		merged.merge(cfg)
		loaded = true
	}

	if !loaded {
		return nil, fmt.Errorf("missing or invalid ~/%s and/or ./%s", ConfigFileName, ConfigFileName)
	}
	return merged, nil
}
