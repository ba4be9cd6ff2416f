// Package palette holds the literal-to-reference table used to replace
// hardcoded color values with named theme constants.
package palette

import "strings"

// Entry maps one exact literal to the symbolic reference that replaces it.
type Entry struct {
	Literal   string `json:"literal"   yaml:"literal"`
	Reference string `json:"reference" yaml:"reference"`
}

// Mapping is an ordered replacement table. Entries are applied in slice order.
type Mapping []Entry

// Default is the builtin color table. The unprefixed literals come before
// their const-qualified variants, so a `const Color(...)` occurrence is
// rewritten by the first entry and keeps its qualifier.
//
//nolint:gochecknoglobals // declarative lookup table.
var Default = Mapping{
	{"Color(0xFFE9692D)", "AppColors.orange"},
	{"Color(0xFFF9E3E0)", "AppColors.lightPeach"},
	{"Color(0xFFF5DCDC)", "AppColors.softPink"},
	{"Color(0xFFFFF6F5)", "AppColors.cardBackground"},
	{"Color(0xFF6A2F1A)", "AppColors.brownHeader"},
	{"Color(0xFF213447)", "AppColors.darkBlue"},
	{"Color(0xFFE64A3A)", "AppColors.danger"},
	{"Color(0xFFF0D9D5)", "AppColors.subtleBorder"},
	{"Color(0xFFFFF2EF)", "AppColors.softPeach"},
	{"Color(0xFFF7E7E5)", "AppColors.softBorder"},
	{"Color(0xFFB85A38)", "AppColors.disabledOrange"},
	{"Color(0xFFFFECE8)", "AppColors.badgeBackground"},

	// Common variations.
	{"const Color(0xFFE9692D)", "AppColors.orange"},
	{"const Color(0xFFF9E3E0)", "AppColors.lightPeach"},
	{"const Color(0xFFF5DCDC)", "AppColors.softPink"},
	{"const Color(0xFFFFF6F5)", "AppColors.cardBackground"},
	{"const Color(0xFF6A2F1A)", "AppColors.brownHeader"},
	{"const Color(0xFF213447)", "AppColors.darkBlue"},
	{"const Color(0xFFE64A3A)", "AppColors.danger"},
	{"const Color(0xFFF0D9D5)", "AppColors.subtleBorder"},
	{"const Color(0xFFFFF2EF)", "AppColors.softPeach"},
	{"const Color(0xFFF7E7E5)", "AppColors.softBorder"},
	{"const Color(0xFFB85A38)", "AppColors.disabledOrange"},
	{"const Color(0xFFFFECE8)", "AppColors.badgeBackground"},
}

// Rewrite replaces every occurrence of every literal in m and returns the new
// content together with the total number of replacements.
//
// Replacement is sequential plain substring substitution. A reference that
// contains a later literal will be rewritten again by that later entry.
func (m Mapping) Rewrite(content string) (string, int) {
	total := 0

	for _, entry := range m {
		if entry.Literal == "" {
			continue
		}

		count := strings.Count(content, entry.Literal)
		if count == 0 {
			continue
		}

		content = strings.ReplaceAll(content, entry.Literal, entry.Reference)
		total += count
	}

	return content, total
}
