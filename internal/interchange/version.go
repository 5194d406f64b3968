package interchange

import (
	"strconv"
	"strings"
)

// SchemaVersion is the envelope schema version this build reads and writes.
const SchemaVersion = "1.0"

// CompatibleWith reports whether a declared "MAJOR.MINOR" version can be
// imported by a reader supporting the given version. Older majors and
// same-major versions up to the supported minor pass; a newer major, or a
// newer minor within the same major, is rejected because it may carry
// fields this reader does not understand.
//
// Unparseable components reject rather than erroring; a malformed version
// is treated exactly like a version from the future.
func CompatibleWith(declared, supported string) bool {
	declMajor, declMinor, ok := parseVersion(declared)
	if !ok {
		return false
	}
	supMajor, supMinor, ok := parseVersion(supported)
	if !ok {
		return false
	}
	if declMajor != supMajor {
		return declMajor < supMajor
	}
	return declMinor <= supMinor
}

func parseVersion(value string) (major, minor int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), ".")
	if len(parts) != 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || major < 0 {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minor < 0 {
		return 0, 0, false
	}
	return major, minor, true
}
