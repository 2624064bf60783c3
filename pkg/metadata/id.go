package metadata

import (
	"strings"
)

// ParseID splits a cargo package id into name, version and source.
//
// Legacy ids look like "serde 1.0.197 (registry+https://...)". Package id
// specs look like "registry+https://...#serde@1.0.197", or "path+file:///w/core#0.1.0"
// when the name equals the last path segment. Parts that cannot be determined
// are returned empty.
func ParseID(id string) (name, version, source string) {
	if fields := strings.Fields(id); len(fields) > 1 {
		name, version = fields[0], fields[1]
		if len(fields) > 2 {
			source = strings.TrimSuffix(strings.TrimPrefix(strings.Join(fields[2:], " "), "("), ")")
		}
		return name, version, source
	}

	url, fragment, ok := strings.Cut(id, "#")
	if !ok {
		// Bare "name@version" or "name".
		name, version, _ = strings.Cut(id, "@")
		return name, version, ""
	}
	source = url
	if n, v, ok := strings.Cut(fragment, "@"); ok {
		return n, v, source
	}
	if looksLikeVersion(fragment) {
		return lastSegment(url), fragment, source
	}
	return fragment, "", source
}

// DescriptorName returns the package name a resolved dependency id refers to.
// For legacy ids this is the leading whitespace-delimited token.
func DescriptorName(desc string) string {
	if fields := strings.Fields(desc); len(fields) > 1 {
		return fields[0]
	}
	name, _, _ := ParseID(desc)
	return name
}

func looksLikeVersion(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func lastSegment(url string) string {
	url, _, _ = strings.Cut(url, "?")
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}
