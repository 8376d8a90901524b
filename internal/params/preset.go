package params

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

type presetDoc struct {
	XMLName xml.Name      `xml:"preset"`
	Name    string        `xml:"name,attr,omitempty"`
	Params  []presetEntry `xml:"param"`
}

type presetEntry struct {
	Name  string   `xml:"name,attr"`
	Group string   `xml:"group,attr,omitempty"`
	Min   *float64 `xml:"min,attr,omitempty"`
	Max   *float64 `xml:"max,attr,omitempty"`
	Value string   `xml:",chardata"`
}

// Save writes s as a preset document. Slider-backed fields carry their range.
func Save(w io.Writer, s Set) error {
	doc := presetDoc{Name: GroupPattern}
	for _, f := range s.Fields() {
		e := presetEntry{Name: f.Name, Group: f.Group, Value: f.Format()}
		if f.Ranged() {
			lo, hi := f.Min, f.Max
			e.Min, e.Max = &lo, &hi
		}
		doc.Params = append(doc.Params, e)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Load reads a preset document into s. Keys missing from the document keep
// their current value and unknown keys are ignored. Values are not range
// checked. If any value is malformed s is left unchanged.
func Load(r io.Reader, s *Set) error {
	var doc presetDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode preset: %w", err)
	}

	next := *s
	for _, e := range doc.Params {
		f, ok := next.Lookup(e.Name)
		if !ok {
			continue
		}
		if err := f.Parse(e.Value); err != nil {
			return fmt.Errorf("preset value %w", err)
		}
	}
	*s = next
	return nil
}

// SaveFile writes s to path, replacing any existing file.
func SaveFile(path string, s Set) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads the preset at path into s.
func LoadFile(path string, s *Set) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Load(f, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
