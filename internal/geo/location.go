package geo

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	streetWordRe = regexp.MustCompile(`\b(st|ave|rd|blvd|dr|ln|ct|pl)\b`)

	streetWords = map[string]string{
		"st":   "street",
		"ave":  "avenue",
		"rd":   "road",
		"blvd": "boulevard",
		"dr":   "drive",
		"ln":   "lane",
		"ct":   "court",
		"pl":   "place",
	}

	partSeparators = []string{",", " - ", " | ", " / "}

	cityCoordinates = map[string]Point{
		"mumbai":    {Latitude: 19.076, Longitude: 72.8777},
		"delhi":     {Latitude: 28.7041, Longitude: 77.1025},
		"bangalore": {Latitude: 12.9716, Longitude: 77.5946},
		"hyderabad": {Latitude: 17.385, Longitude: 78.4867},
		"chennai":   {Latitude: 13.0827, Longitude: 80.2707},
		"kolkata":   {Latitude: 22.5726, Longitude: 88.3639},
		"pune":      {Latitude: 18.5204, Longitude: 73.8567},
		"ahmedabad": {Latitude: 23.0225, Longitude: 72.5714},
		"jaipur":    {Latitude: 26.9124, Longitude: 75.7873},
		"surat":     {Latitude: 21.1702, Longitude: 72.8311},
	}
)

// NormalizeLocation lowercases, strips punctuation other than hyphens,
// collapses whitespace and expands street abbreviations.
func NormalizeLocation(location string) string {
	s := strings.ToLower(location)
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return streetWordRe.ReplaceAllStringFunc(s, func(m string) string {
		return streetWords[m]
	})
}

// Parts is a location split into city and district.
type Parts struct {
	City     string `json:"city"`
	District string `json:"district"`
}

// ExtractLocationParts splits on the first separator present (",", " - ", " | ", " / ")
// and normalizes both halves. Without a separator the whole location is used for both.
func ExtractLocationParts(location string) Parts {
	for _, sep := range partSeparators {
		if !strings.Contains(location, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(location, sep) {
			if n := NormalizeLocation(p); n != "" {
				parts = append(parts, n)
			}
		}
		if len(parts) >= 2 {
			return Parts{City: parts[0], District: parts[1]}
		}
	}

	n := NormalizeLocation(location)
	return Parts{City: n, District: n}
}

// CityCoordinates looks up the centre of a known city.
func CityCoordinates(city string) (Point, bool) {
	p, ok := cityCoordinates[strings.ToLower(strings.TrimSpace(city))]
	return p, ok
}
