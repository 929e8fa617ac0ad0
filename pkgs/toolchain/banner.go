package toolchain

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	gnuTargetMarker  = "Target: "
	gnuVersionMarker = "gcc version "
	msvcMarker       = "Microsoft (R) C/C++ Optimizing Compiler Version "
)

var clangVersionMarkers = []string{"Apple clang version ", "Apple LLVM version "}

// ParseGNUBanner parses the output of "gcc -v".
//
//	Target: x86_64-pc-linux-gnu
//	...
//	gcc version 9.3.0 (GCC)
func ParseGNUBanner(banner string) *CompilerInfo {
	lines := bannerLines(banner)
	i, rest, ok := findMarker(lines, 0, gnuTargetMarker)
	if !ok {
		return nil
	}
	arch, vendor, ok := splitTriple(rest)
	if !ok {
		return nil
	}
	_, rest, ok = findMarker(lines, i+1, gnuVersionMarker)
	if !ok {
		return nil
	}
	c := cursor{s: rest}
	major, ok1 := c.nextInt(isVersionDelim)
	minor, ok2 := c.nextInt(isVersionDelim)
	patch, ok3 := c.nextInt(isVersionDelim)
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	return &CompilerInfo{
		Vendor:       vendor,
		ProductName:  "GNU project C and C++ compiler",
		ShortName:    "gcc",
		VersionMajor: major,
		VersionMinor: minor,
		VersionPatch: patch,
		TargetArch:   arch,
	}
}

// ParseClangBanner parses the output of Apple's "cc -v".
//
//	Apple clang version 12.0.0 (clang-1200.0.32.29)
//	Target: x86_64-apple-darwin19.6.0
//
// Xcode 7 and older omit the patch component; it defaults to 0.
func ParseClangBanner(banner string) *CompilerInfo {
	lines := bannerLines(banner)
	i, rest, ok := findMarker(lines, 0, clangVersionMarkers...)
	if !ok {
		return nil
	}
	c := cursor{s: rest}
	major, ok1 := c.nextInt(isVersionDelim)
	minor, ok2 := c.nextInt(isVersionDelim)
	if !ok1 || !ok2 {
		return nil
	}
	patch := 0
	if n, ok := c.nextInt(isVersionDelim); ok {
		patch = n
	}

	// The target line normally follows the version line, but accept it on
	// the remainder of the version line too.
	lines[i] = c.s
	_, rest, ok = findMarker(lines, i, gnuTargetMarker)
	if !ok {
		return nil
	}
	arch, vendor, ok := splitTriple(rest)
	if !ok {
		return nil
	}
	return &CompilerInfo{
		Vendor:       vendor,
		ProductName:  "LLVM",
		ShortName:    "clang",
		VersionMajor: major,
		VersionMinor: minor,
		VersionPatch: patch,
		TargetArch:   arch,
	}
}

// ParseMSVCBanner parses the banner cl.exe prints when run without
// arguments. The first line holds everything:
//
//	Microsoft (R) C/C++ Optimizing Compiler Version 19.16.27032.1 for x64
func ParseMSVCBanner(banner string) *CompilerInfo {
	lines := bannerLines(banner)
	if len(lines) == 0 {
		return nil
	}
	idx := strings.Index(lines[0], msvcMarker)
	if idx < 0 {
		return nil
	}
	c := cursor{s: lines[0][idx+len(msvcMarker):]}
	major, ok1 := c.nextInt(isVersionDelim)
	minor0, ok2 := c.nextInt(isVersionDelim)
	minor1, ok3 := c.nextInt(isVersionDelim)
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	if !c.skipPast("for ") {
		return nil
	}
	targetArch, ok := c.next(unicode.IsSpace)
	if !ok {
		return nil
	}
	return &CompilerInfo{
		Vendor:       "microsoft",
		ProductName:  "C/C++ Optimizing Compiler",
		ShortName:    "cl",
		VersionMajor: major,
		VersionMinor: minor0,
		VersionPatch: minor1,
		TargetArch:   targetArch,
	}
}

// bannerLines splits probe output into lines, dropping CRs and a UTF-8 BOM.
func bannerLines(banner string) []string {
	banner = strings.TrimPrefix(banner, "\ufeff")
	lines := strings.Split(banner, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// findMarker returns the first line at or after start containing one of
// markers, together with the text following the marker.
func findMarker(lines []string, start int, markers ...string) (int, string, bool) {
	for i := start; i < len(lines); i++ {
		for _, m := range markers {
			if idx := strings.Index(lines[i], m); idx >= 0 {
				return i, lines[i][idx+len(m):], true
			}
		}
	}
	return 0, "", false
}

// splitTriple splits "x86_64-pc-linux-gnu" into arch and vendor. The OS part
// is not needed by any caller.
func splitTriple(s string) (arch, vendor string, ok bool) {
	s = strings.TrimSpace(strings.TrimLeft(s, "-"))
	parts := strings.SplitN(s, "-", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	if strings.ContainsFunc(parts[0], unicode.IsSpace) || strings.ContainsFunc(parts[1], unicode.IsSpace) {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func isVersionDelim(r rune) bool {
	return r == '.' || r == ' '
}

// cursor is a tiny delimiter-based tokenizer over one line.
type cursor struct {
	s string
}

// next skips leading delimiters and returns the following token.
func (c *cursor) next(isDelim func(rune) bool) (string, bool) {
	s := strings.TrimLeftFunc(c.s, isDelim)
	end := strings.IndexFunc(s, isDelim)
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return "", false
	}
	c.s = s[end:]
	return s[:end], true
}

// nextInt consumes the next token if it is a non-negative decimal integer.
// The cursor is left unchanged otherwise.
func (c *cursor) nextInt(isDelim func(rune) bool) (int, bool) {
	save := c.s
	tok, ok := c.next(isDelim)
	if !ok || strings.TrimFunc(tok, func(r rune) bool { return r >= '0' && r <= '9' }) != "" {
		c.s = save
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		c.s = save
		return 0, false
	}
	return n, true
}

// skipPast advances the cursor past the first occurrence of marker.
func (c *cursor) skipPast(marker string) bool {
	idx := strings.Index(c.s, marker)
	if idx < 0 {
		return false
	}
	c.s = c.s[idx+len(marker):]
	return true
}
