package eprom

import (
	"strings"
	"testing"
)

const sampleXML = `<prompro>
  <serial baud="9600" device="/dev/ttyUSB0" rtscts="1"/>
  <eproms>
    <eprom type="27C256" segsize="32768">
      <seg use="27C256" offset="0"/>
    </eprom>
    <eprom type="27C512" segsize="32768">
      <seg use="27C512" offset="0"/>
      <seg use="27C512" offset="32768"/>
    </eprom>
    <eprom type="broken" segsize="8192"/>
  </eproms>
  <defaults eprom="27C256"/>
</prompro>`

func TestLoadReader(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Link.Device != "/dev/ttyUSB0" {
		t.Errorf("Device = %q, want /dev/ttyUSB0", cfg.Link.Device)
	}
	if cfg.Link.Baud != 9600 {
		t.Errorf("Baud = %d, want 9600", cfg.Link.Baud)
	}
	if !cfg.Link.RTSCTS {
		t.Error("RTSCTS = false, want true")
	}
	if cfg.DefaultType != "27C256" {
		t.Errorf("DefaultType = %q, want 27C256", cfg.DefaultType)
	}
	if len(cfg.Catalog) != 3 {
		t.Fatalf("catalog has %d types, want 3", len(cfg.Catalog))
	}

	typ, err := cfg.Catalog.Lookup("27C512")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.SegSize != 32768 {
		t.Errorf("SegSize = %d, want 32768", typ.SegSize)
	}
	if len(typ.Segments) != 2 {
		t.Fatalf("27C512 has %d segments, want 2", len(typ.Segments))
	}
	if typ.Segments[1].Offset != 32768 {
		t.Errorf("second segment offset = %d, want 32768", typ.Segments[1].Offset)
	}
}

func TestLoadReaderInvalid(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"empty input", ""},
		{"malformed XML", "<prompro><serial"},
		{"wrong root element", "<other/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadReader(strings.NewReader(tt.xml)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = cfg.Catalog.Lookup("2764")
	if err == nil {
		t.Fatal("expected error for unknown type, got nil")
	}
	ute, ok := err.(*UnknownTypeError)
	if !ok {
		t.Fatalf("error type = %T, want *UnknownTypeError", err)
	}
	if ute.Name != "2764" {
		t.Errorf("Name = %q, want 2764", ute.Name)
	}
}

func TestImageSize(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want uint32
	}{
		{
			name: "single segment",
			typ: Type{
				SegSize:  32768,
				Segments: []Segment{{Name: "27C256", Offset: 0}},
			},
			want: 32768,
		},
		{
			name: "two segments",
			typ: Type{
				SegSize: 32768,
				Segments: []Segment{
					{Name: "27C512", Offset: 0},
					{Name: "27C512", Offset: 32768},
				},
			},
			want: 65536,
		},
		{
			name: "segments out of offset order",
			typ: Type{
				SegSize: 8192,
				Segments: []Segment{
					{Name: "a", Offset: 24576},
					{Name: "b", Offset: 0},
				},
			},
			want: 32768,
		},
		{
			name: "no segments",
			typ:  Type{SegSize: 8192},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.ImageSize(); got != tt.want {
				t.Errorf("ImageSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base, err := LoadReader(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	override, err := LoadReader(strings.NewReader(`<prompro>
  <serial device="/dev/ttyS1"/>
  <eproms>
    <eprom type="2764" segsize="8192">
      <seg use="2764" offset="0"/>
    </eprom>
  </eproms>
  <defaults eprom="2764"/>
</prompro>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base.merge(override)

	if base.Link.Device != "/dev/ttyS1" {
		t.Errorf("Device = %q, want /dev/ttyS1", base.Link.Device)
	}
	if base.Link.Baud != 9600 {
		t.Errorf("Baud = %d, want 9600 (kept from base)", base.Link.Baud)
	}
	if base.DefaultType != "2764" {
		t.Errorf("DefaultType = %q, want 2764", base.DefaultType)
	}
	if _, err := base.Catalog.Lookup("2764"); err != nil {
		t.Errorf("merged catalog missing 2764: %v", err)
	}
	if _, err := base.Catalog.Lookup("27C256"); err != nil {
		t.Errorf("merged catalog lost 27C256: %v", err)
	}
}
