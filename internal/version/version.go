// Package version provides version information for the htmls2epub CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Formats the CLI writes.
const (
	// PackageVersion is the OPF package document version.
	PackageVersion = "2.0"

	// NCXVersion is the NCX navigation document version.
	NCXVersion = "2005-1"
)

// trackedModules are the libraries whose versions are reported.
var trackedModules = []string{
	"github.com/beevik/etree",
	"github.com/klauspost/compress",
}

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Modules maps tracked library paths to their versions.
	Modules map[string]string `json:"modules,omitempty"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Modules:   moduleVersions(),
	}
}

func moduleVersions() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return filterModules(bi.Deps, trackedModules)
}

func filterModules(deps []*debug.Module, paths []string) map[string]string {
	out := make(map[string]string)
	for _, d := range deps {
		for _, p := range paths {
			if d.Path != p {
				continue
			}
			if d.Replace != nil {
				d = d.Replace
			}
			out[p] = d.Version
		}
	}
	return out
}

// String returns a human-readable version string.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "htmls2epub:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\n",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
	fmt.Fprintf(&b, "EPUB:\n  Package:    OPF %s\n  Navigation: NCX %s", PackageVersion, NCXVersion)

	header := "\n\nLibraries:"
	for _, p := range trackedModules {
		v, ok := i.Modules[p]
		if !ok {
			continue
		}
		b.WriteString(header)
		header = ""
		fmt.Fprintf(&b, "\n  %s %s", p, v)
	}
	return b.String()
}
