package model

// Country is a value type; the registry below is the single source of truth
// for which countries the portal serves.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// placeholderFlag is shown for detected countries outside the registry.
const placeholderFlag = "🌎"

// supportedCountries is the fixed registry. Order matters: the first entry is
// the default used when detection fails.
var supportedCountries = []Country{
	{Code: "MX", Name: "México", Flag: "🇲🇽"},
	{Code: "CO", Name: "Colombia", Flag: "🇨🇴"},
	{Code: "EC", Name: "Ecuador", Flag: "🇪🇨"},
	{Code: "SV", Name: "El Salvador", Flag: "🇸🇻"},
	{Code: "GT", Name: "Guatemala", Flag: "🇬🇹"},
	{Code: "HN", Name: "Honduras", Flag: "🇭🇳"},
	{Code: "DO", Name: "República Dominicana", Flag: "🇩🇴"},
	{Code: "PA", Name: "Panamá", Flag: "🇵🇦"},
}

// fallbackCountryCode is forced when a visitor rejects the privacy policy.
const fallbackCountryCode = "PA"

// SupportedCountries returns a copy of the registry.
func SupportedCountries() []Country {
	out := make([]Country, len(supportedCountries))
	copy(out, supportedCountries)
	return out
}

func IsSupportedCountry(code string) bool {
	for _, c := range supportedCountries {
		if c.Code == code {
			return true
		}
	}
	return false
}

// FindCountry looks a country up by code. The second return is false when the
// code is not in the registry.
func FindCountry(code string) (Country, bool) {
	for _, c := range supportedCountries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// DefaultCountry is used when geo detection fails entirely.
func DefaultCountry() Country { return supportedCountries[0] }

// FallbackCountry is the country visitors are moved to after rejecting the
// privacy policy.
func FallbackCountry() Country {
	if c, ok := FindCountry(fallbackCountryCode); ok {
		return c
	}
	return supportedCountries[0]
}

// AdHocCountry builds a country value for a detected code outside the
// registry, with the placeholder flag glyph.
func AdHocCountry(code, name string) Country {
	if name == "" {
		name = "País no soportado"
	}
	return Country{Code: code, Name: name, Flag: placeholderFlag}
}
