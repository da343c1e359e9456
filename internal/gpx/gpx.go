// Package gpx reads workout route track files.
//
// The parser facade never opens track files (it only lists the directory);
// this package serves consumers that want the actual track points, such as
// the healthdump CLI's route statistics.
package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"
)

// Point is one recorded track point.
type Point struct {
	Lat  float64
	Lon  float64
	Ele  float64
	Time time.Time
}

// Track is the parsed contents of one track file.
type Track struct {
	Name   string
	Points []Point
}

// gpx document shape

type gpxDoc struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Ele  float64 `xml:"ele"`
	Time string  `xml:"time"`
}

// ParseFile opens and parses one track file.
func ParseFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a track document from r. All segments of the first track
// are flattened into one point sequence.
func Parse(r io.Reader) (*Track, error) {
	var doc gpxDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	if len(doc.Tracks) == 0 {
		return nil, fmt.Errorf("no track data found")
	}

	src := doc.Tracks[0]
	track := &Track{Name: src.Name}

	for _, seg := range src.Segments {
		for _, p := range seg.Points {
			pt := Point{Lat: p.Lat, Lon: p.Lon, Ele: p.Ele}
			if p.Time != "" {
				if ts, err := time.Parse(time.RFC3339, p.Time); err == nil {
					pt.Time = ts
				}
			}
			track.Points = append(track.Points, pt)
		}
	}

	return track, nil
}
