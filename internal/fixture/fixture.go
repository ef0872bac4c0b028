// Package fixture loads reference curves stored as SVG files.
package fixture

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This is not a full (or even correct) svg parser. It parses the SVG, finds
// the single polyline in it and returns its points. If anything goes wrong, it
// exits, since a broken fixture is a broken test suite.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

// LoadCurve returns the x and y coordinates of the polyline in the named
// fixture.
func LoadCurve(name string) (x, y []float64) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polylines := rootEl.FindAll("polyline")
	if len(polylines) == 0 {
		log.Fatalf("No polylines found in fixture %q", name)
	}
	if len(polylines) > 1 {
		log.Fatalf("More than one polyline found in fixture %q", name)
	}

	pointStrings := strings.Fields(polylines[0].Attributes["points"])
	x = make([]float64, 0, len(pointStrings))
	y = make([]float64, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Bad point %q in fixture %q", pointString, name)
		}
		px, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Bad x coordinate %q in fixture %q: %v", coords[0], name, err)
		}
		py, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Bad y coordinate %q in fixture %q: %v", coords[1], name, err)
		}
		x = append(x, px)
		y = append(y, py)
	}
	return x, y
}

// Names lists the available fixtures.
func Names() []string {
	entries, err := fixtures.ReadDir("fixtures")
	if err != nil {
		log.Fatalf("Could not list fixtures: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".svg"))
	}
	return names
}
