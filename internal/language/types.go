package language

import "github.com/abhisek/quickspeak/internal/assets"

// Language is a language the user can learn, identified by country code.
type Language struct {
	Name        string
	CountryCode string
	Native      bool
}

// FlagURL returns the circular flag image URL for the language.
func (l Language) FlagURL() string {
	return assets.FlagURL(l.CountryCode)
}

// masterList is every language the app offers, in display order.
// Portuguese appears twice (Brazil and Portugal); entries are keyed by
// country code, not by name.
var masterList = []Language{
	{Name: "English", CountryCode: "US"},
	{Name: "Portuguese", CountryCode: "BR"},
	{Name: "German", CountryCode: "DE"},
	{Name: "Spanish", CountryCode: "ES"},
	{Name: "Hindi", CountryCode: "IN"},
	{Name: "French", CountryCode: "FR"},
	{Name: "Chinese", CountryCode: "CN"},
	{Name: "Russian", CountryCode: "RU"},
	{Name: "Arabic", CountryCode: "AE"},
	{Name: "Japanese", CountryCode: "JP"},
	{Name: "Korean", CountryCode: "KR"},
	{Name: "Italian", CountryCode: "IT"},
	{Name: "Dutch", CountryCode: "NL"},
	{Name: "Portuguese", CountryCode: "PT"},
	{Name: "Polish", CountryCode: "PL"},
	{Name: "Turkish", CountryCode: "TR"},
	{Name: "Swedish", CountryCode: "SE"},
	{Name: "Norwegian", CountryCode: "NO"},
	{Name: "Danish", CountryCode: "DK"},
	{Name: "Finnish", CountryCode: "FI"},
	{Name: "Irish", CountryCode: "IE"},
}

// MasterList returns every offered language in display order.
func MasterList() []Language {
	out := make([]Language, len(masterList))
	copy(out, masterList)
	return out
}

// Lookup finds an offered language by country code (case-insensitive).
func Lookup(countryCode string) (Language, bool) {
	for _, l := range masterList {
		if equalCode(l.CountryCode, countryCode) {
			return l, true
		}
	}
	return Language{}, false
}

// defaultLearning is the learning set a new user starts with.
func defaultLearning() []Language {
	return []Language{
		{Name: "English", CountryCode: "US", Native: true},
		{Name: "Portuguese", CountryCode: "BR"},
		{Name: "German", CountryCode: "DE"},
	}
}
