package kbpanel

import "strings"

type Display struct {
	Label   string
	Icon    Icon
	Tooltip string
}

func Label(code string, style IconStyle, showText bool, pos TextPosition) string {
	text := strings.ToUpper(code)

	if style != IconFlag {
		if showText {
			return text
		}
		return ""
	}

	flag := FlagText(code)
	if !showText {
		return flag
	}
	if pos == TextLeft {
		return text + " " + flag
	}
	return flag + " " + text
}

func render(code string, settings Settings) Display {
	style := settings.IconStyle()

	icon := NoIcon
	if style == IconKeyboard {
		icon = KeyboardIcon
	}

	return Display{
		Label:   Label(code, style, settings.ShowText(), settings.TextPosition()),
		Icon:    icon,
		Tooltip: "Keyboard layout: " + DisplayName(code),
	}
}
