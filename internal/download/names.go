// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// unsafeRun matches runs of characters that are not kept in filenames.
var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// now is swapped in tests.
var now = time.Now

// Sanitize replaces each run of characters outside [A-Za-z0-9._-] with a
// single underscore and trims leading and trailing dots and underscores.
// If nothing is left it returns the current Unix time in seconds.
func Sanitize(name string) string {
	name = unsafeRun.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return strconv.FormatInt(now().Unix(), 10)
	}
	return name
}

// NumberedName returns the output filename for the idx-th (1-based)
// candidate whose URL path ends in base: a two-digit ordinal prefix and a
// sanitized name that always ends in .pdf.
func NumberedName(idx int, base string) string {
	name := Sanitize(base)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return fmt.Sprintf("%02d_%s", idx, name)
}
