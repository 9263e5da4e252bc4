package helper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename strips diacritics and path parts, keeping [a-zA-Z0-9._-].
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	safe := reUnsafeFilename.ReplaceAllString(b.String(), "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "file"
	}
	if len(safe) > 120 {
		safe = safe[len(safe)-120:]
	}
	return safe
}

// GenerateUniqueFilename: <folder>/<yyyymmdd>-<uuid>-<name>
func GenerateUniqueFilename(folder, originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		strings.Trim(folder, "/"),
		time.Now().Format("20060102"),
		uuid.NewString(),
		SanitizeFilename(originalFilename),
	)
}
