package weather

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// defaultCities maps city names to OpenWeatherMap location ids.
var defaultCities = map[string]string{
	"Kolkata":      "1275004",
	"Asansol":      "1278314",
	"Durgapur":     "1272175",
	"Baharampur":   "1277820",
	"Habra":        "1270568",
	"Kharagpur":    "1266976",
	"Shantipur":    "1256639",
	"Ranaghat":     "1258546",
	"Haldia":       "1344377",
	"Raiganj":      "1259009",
	"Krishnanagar": "1265859",
	"Medinipur":    "1263220",
	"Jalpaiguri":   "1269388",
	"Balurghat":    "1277508",
	"Bankura":      "1277264",
	"Jangipur":     "1269247",
	"Bangaon":      "1277324",
}

// Directory is an immutable mapping from city name to provider location id.
// Lookups are exact and case-sensitive.
type Directory struct {
	ids map[string]string
}

// NewDirectory copies entries into a new Directory.
func NewDirectory(entries map[string]string) Directory {
	ids := make(map[string]string, len(entries))
	for name, id := range entries {
		ids[name] = id
	}
	return Directory{ids: ids}
}

// DefaultDirectory returns the built-in city table.
func DefaultDirectory() Directory {
	return NewDirectory(defaultCities)
}

// LoadDirectory reads a JSON object of name to id pairs from path.
func LoadDirectory(path string) (Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Directory{}, fmt.Errorf("reading city directory: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return Directory{}, fmt.Errorf("decoding city directory: %w", err)
	}

	for name, id := range entries {
		if err := validate.Var(id, "required,numeric"); err != nil {
			return Directory{}, fmt.Errorf("city directory entry %q: invalid id %q", name, id)
		}
	}

	return NewDirectory(entries), nil
}

// Lookup returns the location id for name.
func (d Directory) Lookup(name string) (string, bool) {
	id, ok := d.ids[name]
	return id, ok
}

func (d Directory) Len() int {
	return len(d.ids)
}

// Names returns the city names in lexical order.
func (d Directory) Names() []string {
	names := make([]string, 0, len(d.ids))
	for name := range d.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a copy of the mapping.
func (d Directory) Entries() map[string]string {
	out := make(map[string]string, len(d.ids))
	for name, id := range d.ids {
		out[name] = id
	}
	return out
}
