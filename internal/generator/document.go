package generator

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is the configuration of one asset in the generated file.
type Entry struct {
	AssetID                string  `yaml:"asset_id"`
	FallbackPeriodSec      int     `yaml:"fallback_period_sec"`
	PercentChangeThreshold float64 `yaml:"percent_change_threshold"`
	EncodedAssetID         string  `yaml:"encoded_asset_id"`
}

// Document is the generated file: an "assets" mapping keyed by asset id.
// Entries keep resolution order, which is also the order they are written in.
type Document struct {
	Entries []Entry
}

// IDs returns the asset ids in document order.
func (d *Document) IDs() []string {
	ids := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		ids[i] = e.AssetID
	}
	return ids
}

// MarshalYAML renders the document as an ordered node tree. A plain map would
// lose the resolution order and yaml.v3 prints 1.0 as 1, so both are done by hand.
func (d *Document) MarshalYAML() (any, error) {
	assets := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.Entries {
		assets.Content = append(assets.Content, strNode(e.AssetID), entryNode(e))
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{strNode("assets"), assets},
	}, nil
}

// Encode writes the document as YAML with two-space indentation.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func entryNode(e Entry) *yaml.Node {
	encoded := strNode(e.EncodedAssetID)
	// Quoted so that YAML readers never take the hex string for a number.
	encoded.Style = yaml.DoubleQuotedStyle

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			strNode("asset_id"), strNode(e.AssetID),
			strNode("fallback_period_sec"), {Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.FallbackPeriodSec)},
			strNode("percent_change_threshold"), {Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(e.PercentChangeThreshold)},
			strNode("encoded_asset_id"), encoded,
		},
	}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// formatFloat prints f in the shortest form that still reads back as a float,
// e.g. 1 -> "1.0", 0.25 -> "0.25".
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseDocument reads a generated file back. Entry order follows the file.
func ParseDocument(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at the document root")
	}

	top := root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != "assets" {
			continue
		}
		assets := top.Content[i+1]
		if assets.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("\"assets\" must be a mapping")
		}
		doc := &Document{}
		for j := 0; j+1 < len(assets.Content); j += 2 {
			var e Entry
			if err := assets.Content[j+1].Decode(&e); err != nil {
				return nil, fmt.Errorf("asset %s: %w", assets.Content[j].Value, err)
			}
			doc.Entries = append(doc.Entries, e)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("missing \"assets\" mapping")
}
