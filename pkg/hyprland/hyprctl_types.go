package hyprland

import "strings"

type keyboard struct {
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	Variant      string `json:"variant"`
	Options      string `json:"options"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

func (k keyboard) layouts() []string {
	var out []string
	for _, l := range strings.Split(k.Layout, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func (d devices) mainKeyboard() (keyboard, bool) {
	for _, k := range d.Keyboards {
		if k.Main {
			return k, true
		}
	}
	if len(d.Keyboards) > 0 {
		return d.Keyboards[0], true
	}
	return keyboard{}, false
}
