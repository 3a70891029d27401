package kbpanel

import (
	"fmt"
	"strings"
)

const (
	idLayoutPrefix = "layout:"
	idIconPrefix   = "icon:"
	idShowText     = "show-text"
	idAutostart    = "autostart"
	idQuit         = "quit"
)

var iconChoices = []struct {
	style IconStyle
	title string
}{
	{IconNone, "No icon"},
	{IconKeyboard, "Keyboard"},
	{IconFlag, "Country flag"},
}

func buildMenu(current string, layouts []string, settings Settings, describer Describer) []MenuItem {
	items := []MenuItem{
		{ID: "current", Title: fmt.Sprintf("Current: %s", strings.ToUpper(current)), Disabled: true},
		{Separator: true},
	}

	for i, code := range layouts {
		tooltip := DisplayName(code)
		if describer != nil {
			if desc := describer.Describe(code); desc != "" {
				tooltip = desc
			}
		}

		items = append(items, MenuItem{
			ID:        layoutID(i, code),
			Title:     fmt.Sprintf("Switch to %s", DisplayName(code)),
			Tooltip:   tooltip,
			Checkable: true,
			Checked:   code == current,
		})
	}

	iconItems := make([]MenuItem, 0, len(iconChoices))
	style := settings.IconStyle()
	for _, choice := range iconChoices {
		iconItems = append(iconItems, MenuItem{
			ID:        idIconPrefix + string(choice.style),
			Title:     choice.title,
			Checkable: true,
			Checked:   choice.style == style,
		})
	}

	items = append(items,
		MenuItem{Separator: true},
		MenuItem{
			ID:    "settings",
			Title: "Settings",
			Children: []MenuItem{
				{ID: "icon-type", Title: "Icon type", Children: iconItems},
				{ID: idShowText, Title: "Show text", Checkable: true, Checked: settings.ShowText()},
				{ID: idAutostart, Title: "Start on login", Checkable: true, Checked: settings.Autostart()},
			},
		},
		MenuItem{Separator: true},
		MenuItem{ID: idQuit, Title: "Quit"},
	)

	return items
}

// layoutID keys a layout entry by position as well as code, since a
// misconfigured tool can report the same code twice.
func layoutID(idx int, code string) string {
	return fmt.Sprintf("%s%d:%s", idLayoutPrefix, idx, code)
}

func layoutFromID(id string) string {
	rest := strings.TrimPrefix(id, idLayoutPrefix)
	if _, code, ok := strings.Cut(rest, ":"); ok {
		return code
	}
	return rest
}
