package sourceset

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/suryansh-23/subspot/internal/config"
)

// Match reports whether a subtitle path is selected by the given filters.
// Filters match against the file basename by default. If a filter contains a
// path separator, it is matched against the full path instead. An empty
// filter list selects everything.
func Match(filters []string, subtitlePath string) (bool, error) {
	subtitlePath = strings.TrimSpace(subtitlePath)
	if subtitlePath == "" {
		return false, nil
	}
	full := filepath.ToSlash(subtitlePath)
	base := path.Base(full)

	active := 0
	for _, filter := range filters {
		pattern := strings.TrimSpace(filter)
		if pattern == "" {
			continue
		}
		active++
		target := base
		if strings.Contains(pattern, "/") {
			target = full
		}
		ok, err := path.Match(pattern, target)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return active == 0, nil
}

// Filter keeps the sources whose subtitle path matches the filters, in order.
func Filter(sources []config.Source, filters []string) ([]config.Source, error) {
	out := make([]config.Source, 0, len(sources))
	for _, src := range sources {
		ok, err := Match(filters, src.Subtitle)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, src)
		}
	}
	return out, nil
}

// FromPaths builds sources from bare subtitle paths. A media file with the
// same stem next to the subtitle is paired when present in media. Stems are
// compared as absolute paths, so relative and absolute spellings pair.
func FromPaths(paths []string, media []string) []config.Source {
	byStem := make(map[string]string, len(media))
	for _, m := range media {
		byStem[stem(m)] = m
	}
	out := make([]config.Source, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, config.Source{Subtitle: p, Media: byStem[stem(p)]})
	}
	return out
}

func stem(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}
