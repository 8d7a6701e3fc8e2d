package settings

import "strings"

// NormalizeMembers trims entries, drops blanks and removes duplicates while
// keeping the first occurrence's position.
func NormalizeMembers(members []string) []string {
	out := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// AddMember appends member unless it is blank or already present.
func AddMember(members []string, member string) []string {
	return NormalizeMembers(append(append([]string(nil), members...), member))
}

// RemoveMember drops every occurrence of member.
func RemoveMember(members []string, member string) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m != member {
			out = append(out, m)
		}
	}
	return out
}
