package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const DefaultRegistryPath = "/usr/share/X11/xkb/rules/evdev.xml"

func ParseLayouts(path string) (*XkbConfigRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*XkbConfigRegistry, error) {
	registry := &XkbConfigRegistry{}
	err := xml.NewDecoder(r).Decode(registry)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

func (r *XkbConfigRegistry) GetLayoutPrettyName(layout, variant string) string {
	l := r.find(layout)
	if l == nil {
		return ""
	}
	if variant == "" {
		return l.ConfigItem.Description
	}

	for _, v := range l.VariantList.Variant {
		if v.ConfigItem.Name == variant {
			return v.ConfigItem.Description
		}
	}

	return ""
}

// Describe returns the registry description of a layout code, or "" when the
// registry does not know it. A nil registry knows nothing.
func (r *XkbConfigRegistry) Describe(code string) string {
	if r == nil {
		return ""
	}
	return r.GetLayoutPrettyName(code, "")
}

func (r *XkbConfigRegistry) GetLayoutAndVariantFromPrettyName(prettyName string) (string, string) {
	if r == nil {
		return "", ""
	}

	for _, l := range r.LayoutList.Layout {
		if l.ConfigItem.Description == prettyName {
			return l.ConfigItem.Name, ""
		}

		for _, v := range l.VariantList.Variant {
			if v.ConfigItem.Description == prettyName {
				return l.ConfigItem.Name, v.ConfigItem.Name
			}
		}
	}

	return "", ""
}
