package aggregate

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mereldawu/ipyhealth/config"
	apperrors "github.com/mereldawu/ipyhealth/errors"
)

// Track-file names embed the workout start time in one of two shapes:
// "route_2020-05-01_10-00-00.gpx" or the vendor's 12-hour form
// "route_2020-05-01_10.00am.gpx".
var (
	trackTimeRe     = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})_(\d{2}-\d{2}-\d{2})`)
	trackTimeAmPmRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})_(\d{1,2})\.(\d{2})(am|pm)`)
)

// indexTrackFiles lists the track directory and maps each embedded
// timestamp to its file path. Directory order is lexical, so on duplicate
// timestamps the first file wins.
func indexTrackFiles(trackDir string) (map[time.Time]string, error) {
	entries, err := os.ReadDir(trackDir)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrRoutesDirMissing, "%s", trackDir)
	}

	index := make(map[time.Time]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), config.RouteFileExt) {
			continue
		}

		ts, ok := fileTime(e.Name())
		if !ok {
			log.Warn("no timestamp in track file name", "file", e.Name())
			continue
		}
		if _, exists := index[ts]; exists {
			continue // first match wins
		}
		index[ts] = filepath.Join(trackDir, e.Name())
	}

	return index, nil
}

// fileTime extracts the timestamp embedded in a track-file name.
func fileTime(name string) (time.Time, bool) {
	if m := trackTimeRe.FindStringSubmatch(name); m != nil {
		t, err := time.Parse(config.RouteFileTimeLayout, m[1]+"_"+m[2])
		if err == nil {
			return t, true
		}
	}

	if m := trackTimeAmPmRe.FindStringSubmatch(name); m != nil {
		day, err := time.Parse(config.DateLayout, m[1])
		if err != nil {
			return time.Time{}, false
		}
		hour, _ := strconv.Atoi(m[2])
		minute, _ := strconv.Atoi(m[3])
		if hour == 12 {
			hour = 0
		}
		if m[4] == "pm" {
			hour += 12
		}
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
	}

	return time.Time{}, false
}
