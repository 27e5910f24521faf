// Package buildinfo reports the version of the wikitable and qrgen binaries.
// Values are stamped with -ldflags; cli.Version and cli.Date are honoured when
// the build script sets those instead.
package buildinfo

import (
	"runtime"
	"strings"

	"github.com/flarebyte/papyrus/cli"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	BuiltBy = ""
)

// Info is the resolved build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	BuiltBy string `json:"built_by"`
	Go      string `json:"go"`
	OS      string `json:"go_os"`
	Arch    string `json:"go_arch"`
}

// Current resolves the stamped values, falling back to the cli package and
// then to "dev".
func Current() Info {
	return Info{
		Version: firstNonEmpty(Version, cli.Version, "dev"),
		Commit:  Commit,
		Date:    firstNonEmpty(Date, cli.Date),
		BuiltBy: BuiltBy,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// Summary returns one line such as "1.2.0 (commit=abc1234, date=2026-10-01)".
func Summary() string {
	info := Current()
	var extra []string
	if info.Commit != "" {
		extra = append(extra, "commit="+shortCommit(info.Commit))
	}
	if info.Date != "" {
		extra = append(extra, "date="+info.Date)
	}
	if len(extra) == 0 {
		return info.Version
	}
	return info.Version + " (" + strings.Join(extra, ", ") + ")"
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
