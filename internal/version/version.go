// Package version carries build information set with -ldflags.
package version

var (
	BuildVersion = "dev"
	BuildRef     = ""
	BuildDate    = ""
)

func String() string {
	s := BuildVersion
	if BuildRef != "" {
		s += " (" + BuildRef + ")"
	}
	if BuildDate != "" {
		s += " on " + BuildDate
	}
	return s
}
