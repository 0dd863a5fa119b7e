package hatch

import (
	"regexp"
	"strconv"
	"strings"
)

// UnknownSubject is the name used when no strategy recovers one
const UnknownSubject = "Unknown"

var (
	eggRe     = regexp.MustCompile(`(?i)egg`)
	numberRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	kgRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kg`)
	hatchedRe = regexp.MustCompile(`(?i)hatched from\s*[:\-]\s*([^\n]+)`)
)

// Interpret extracts the hatched creature's name and weight from a payload.
//
// Name strategies, in order: embed field labeled like "from" (egg-stripped),
// embed title verbatim, "Hatched From:" capture in the content text
// (egg-stripped), then UnknownSubject. Weight strategies: embed field labeled
// like "weight", then the first "<number>kg" token anywhere in the payload,
// then 0. Name and weight resolve independently; when several fields match a
// label the last one in document order wins.
func Interpret(p Payload) (name string, weightKg float64) {
	var fields []Field
	if len(p.Embeds) > 0 {
		fields = p.Embeds[0].Fields
	}

	if v, ok := lastFieldMatching(fields, "from"); ok {
		name = stripEgg(v)
	}
	if name == "" && len(p.Embeds) > 0 && p.Embeds[0].Title != "" {
		name = p.Embeds[0].Title
	}
	if name == "" && p.Content != "" {
		if m := hatchedRe.FindStringSubmatch(p.Content); m != nil {
			name = stripEgg(m[1])
		}
	}
	if name == "" {
		name = UnknownSubject
	}

	found := false
	if v, ok := lastFieldMatching(fields, "weight"); ok {
		if tok := numberRe.FindString(v); tok != "" {
			if w, err := strconv.ParseFloat(tok, 64); err == nil {
				weightKg = w
				found = true
			}
		}
	}
	if !found {
		if m := kgRe.FindStringSubmatch(p.flatten()); m != nil {
			if w, err := strconv.ParseFloat(m[1], 64); err == nil {
				weightKg = w
			}
		}
	}

	return name, weightKg
}

// lastFieldMatching scans every field and returns the value of the last one
// whose name contains substr, case-insensitively. No early exit: a later
// match always replaces an earlier one.
func lastFieldMatching(fields []Field, substr string) (string, bool) {
	value, found := "", false
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Name), substr) {
			value, found = f.Value, true
		}
	}
	return value, found
}

// stripEgg removes every case-insensitive "egg" occurrence and trims the rest
func stripEgg(s string) string {
	return strings.TrimSpace(eggRe.ReplaceAllString(s, ""))
}
