// Package pricing turns quantity trees into priced trees and reduces the
// priced totals to a final project price.
package pricing

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// PriceTable maps a dotted leaf path to its unit price.
type PriceTable map[string]decimal.Decimal

// Keys returns the table paths in sorted order.
func (pt PriceTable) Keys() []string {
	keys := make([]string, 0, len(pt))
	for k := range pt {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the unit price for path.
func (pt PriceTable) Lookup(path string) (decimal.Decimal, bool) {
	v, ok := pt[path]
	return v, ok
}

// LoadPriceTable reads a YAML price file. The file has a top-level
// "prices" mapping nested the same way as the quantity tree.
func LoadPriceTable(path string) (PriceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pricing: read price table %s", path)
	}
	return ParsePriceTable(data)
}

// ParsePriceTable parses YAML price data.
func ParsePriceTable(data []byte) (PriceTable, error) {
	var wrapper struct {
		Prices yaml.Node `yaml:"prices"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "pricing: parse price table")
	}

	out := PriceTable{}
	if wrapper.Prices.Kind == 0 || wrapper.Prices.Tag == "!!null" {
		return out, nil
	}
	if err := flatten(nil, &wrapper.Prices, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(path []string, n *yaml.Node, out PriceTable) error {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child := append(append([]string(nil), path...), key)
			if err := flatten(child, n.Content[i+1], out); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if len(path) == 0 {
			return eris.New("pricing: prices must be a mapping")
		}
		price, err := parsePrice(n.Value)
		if err != nil {
			return eris.Wrapf(err, "pricing: %s (line %d)", model.JoinPath(path), n.Line)
		}
		out[model.JoinPath(path)] = price
		return nil
	default:
		return eris.Errorf("pricing: %s (line %d): expected mapping or number", model.JoinPath(path), n.Line)
	}
}

func parsePrice(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, eris.Wrapf(err, "invalid price %q", s)
	}
	if v.IsNegative() {
		return decimal.Zero, eris.Errorf("negative price %s", v)
	}
	return v, nil
}

// ReadPriceTableXLSX reads a supplier spreadsheet whose first sheet holds
// "path | unit price" rows. A leading header row and blank rows are
// skipped.
func ReadPriceTableXLSX(path string) (PriceTable, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "pricing: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("pricing: %s has no sheets", path)
	}

	out := PriceTable{}
	for i, row := range f.Sheets[0].Rows {
		if row == nil || len(row.Cells) == 0 {
			continue
		}
		key := strings.TrimSpace(row.Cells[0].String())
		if key == "" {
			continue
		}
		if len(row.Cells) < 2 {
			return nil, eris.Errorf("pricing: row %d: missing price for %s", i+1, key)
		}

		price, err := parsePrice(row.Cells[1].String())
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, eris.Wrapf(err, "pricing: row %d", i+1)
		}
		out[key] = price
	}
	return out, nil
}

// Nested re-nests the table by path segment. It fails when a path is both
// a price and a prefix of another path.
func (pt PriceTable) Nested() (map[string]any, error) {
	out := map[string]any{}
	for _, key := range pt.Keys() {
		path := model.SplitPath(key)
		cur := out
		for _, seg := range path[:len(path)-1] {
			next, exists := cur[seg]
			if !exists {
				m := map[string]any{}
				cur[seg] = m
				cur = m
				continue
			}
			m, ok := next.(map[string]any)
			if !ok {
				return nil, eris.Errorf("pricing: %s is both a price and a group", seg)
			}
			cur = m
		}
		leaf := path[len(path)-1]
		if _, exists := cur[leaf]; exists {
			return nil, eris.Errorf("pricing: %s is both a price and a group", key)
		}
		cur[leaf] = pt[key]
	}
	return out, nil
}

// WriteYAML writes the table in the format LoadPriceTable reads.
func (pt PriceTable) WriteYAML(w io.Writer) error {
	nested, err := pt.Nested()
	if err != nil {
		return err
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "prices"},
		toNode(nested),
	)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "pricing: encode price table")
	}
	return eris.Wrap(enc.Close(), "pricing: flush price table")
}

func toNode(m map[string]any) *yaml.Node {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var v *yaml.Node
		switch val := m[k].(type) {
		case map[string]any:
			v = toNode(val)
		case decimal.Decimal:
			v = &yaml.Node{Kind: yaml.ScalarNode, Value: val.String()}
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, v)
	}
	return n
}
