package kbpanel

import "strings"

var layoutNames = map[string]string{
	"us": "English (US)",
	"ru": "Russian",
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
}

// layout code -> ISO 3166 country, ASCII only so every tray host can draw it
var layoutCountries = map[string]string{
	"us": "US",
	"en": "EN",
	"gb": "GB",
	"uk": "GB",
	"ru": "RU",
	"ua": "UA",
	"by": "BY",
	"de": "DE",
	"at": "AT",
	"ch": "CH",
	"fr": "FR",
	"be": "BE",
	"es": "ES",
	"it": "IT",
	"pt": "PT",
	"br": "BR",
	"pl": "PL",
	"cz": "CZ",
	"sk": "SK",
	"se": "SE",
	"no": "NO",
	"dk": "DK",
	"fi": "FI",
	"ee": "EE",
	"lv": "LV",
	"lt": "LT",
	"gr": "GR",
	"tr": "TR",
	"il": "IL",
	"jp": "JP",
	"kr": "KR",
	"cn": "CN",
	"kz": "KZ",
}

const unknownFlag = "[??]"

func DisplayName(code string) string {
	if name, ok := layoutNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

func FlagText(code string) string {
	country, ok := layoutCountries[strings.ToLower(code)]
	if !ok {
		return unknownFlag
	}
	return "[" + country + "]"
}
