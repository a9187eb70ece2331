package printer

import "strings"

// LabelSpec holds the textual size tokens a driver media name is matched
// against, in both unit systems.
type LabelSpec struct {
	WidthIn  string
	HeightIn string
	WidthMM  string
	HeightMM string
}

// ResolvePaper picks the first candidate whose name mentions both label
// dimensions, in either unit system, in any order. Drivers rarely expose the
// target size as a clean numeric field and names are localized, so matching
// stays textual. No match is not a failure: the caller keeps the device's
// configured size.
func ResolvePaper(candidates []PaperSize, label LabelSpec) (PaperSize, bool) {
	for _, candidate := range candidates {
		if mentionsDimension(candidate.Name, label.WidthIn, label.WidthMM) &&
			mentionsDimension(candidate.Name, label.HeightIn, label.HeightMM) {
			return candidate, true
		}
	}
	return PaperSize{}, false
}

func mentionsDimension(name, inches, millimetres string) bool {
	return strings.Contains(name, inches) || strings.Contains(name, millimetres)
}
