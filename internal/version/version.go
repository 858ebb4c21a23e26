// Package version reports the build of the tinify binary.
// Values may be injected with -ldflags -X, otherwise they come from the
// module build info.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gosuri/uitable"
	"github.com/shestakovda/tinify"
)

var (
	// gitVersion is the semantic version of the build, vMAJOR.MINOR.PATCH
	gitVersion = ""
	// gitCommit is the output of $(git rev-parse HEAD)
	gitCommit = ""
	// gitTreeState is clean or dirty
	gitTreeState = ""
	// buildDate is ISO8601, $(date -u +'%Y-%m-%dT%H:%M:%SZ')
	buildDate = ""
)

const unknown = "unknown"

type Info struct {
	ClientVersion string `json:"clientVersion"`
	GitVersion    string `json:"gitVersion"`
	GitCommit     string `json:"gitCommit"`
	GitTreeState  string `json:"gitTreeState,omitempty"`
	BuildDate     string `json:"buildDate,omitempty"`
	GoVersion     string `json:"goVersion"`
	Compiler      string `json:"compiler"`
	Platform      string `json:"platform"`
}

func (info Info) String() string {
	if info.GitTreeState == "dirty" {
		return info.GitVersion + "-dirty"
	}
	return info.GitVersion
}

func (info Info) ShortString() string {
	return info.GitVersion
}

func (info Info) ToJSONIndent() (string, error) {
	s, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal version info: %w", err)
	}
	return string(s), nil
}

// Text renders the info as an aligned two column table.
func (info Info) Text() string {
	table := uitable.New()
	table.RightAlign(0)
	table.MaxColWidth = 80
	table.Separator = " "
	table.AddRow("clientVersion:", info.ClientVersion)
	table.AddRow("gitVersion:", info.GitVersion)
	table.AddRow("gitCommit:", info.GitCommit)
	if info.GitTreeState != "" {
		table.AddRow("gitTreeState:", info.GitTreeState)
	}
	if info.BuildDate != "" {
		table.AddRow("buildDate:", info.BuildDate)
	}
	table.AddRow("goVersion:", info.GoVersion)
	table.AddRow("compiler:", info.Compiler)
	table.AddRow("platform:", info.Platform)

	return table.String()
}

func Get() Info {
	info := Info{
		ClientVersion: tinify.Version,
		GitVersion:    gitVersion,
		GitCommit:     gitCommit,
		GitTreeState:  gitTreeState,
		BuildDate:     buildDate,
		GoVersion:     runtime.Version(),
		Compiler:      runtime.Compiler,
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if info.GitVersion == "" {
		info.GitVersion = fallback(versioninfo.Version)
	}

	if info.GitCommit == "" {
		info.GitCommit = fallback(versioninfo.Revision)

		if info.GitTreeState == "" && info.GitCommit != unknown {
			info.GitTreeState = "clean"
			if versioninfo.DirtyBuild {
				info.GitTreeState = "dirty"
			}
		}
	}

	if info.BuildDate == "" && !versioninfo.LastCommit.IsZero() {
		info.BuildDate = versioninfo.LastCommit.UTC().Format(time.RFC3339)
	}

	return info
}

func fallback(v string) string {
	if v == "" || v == "(devel)" {
		return unknown
	}
	return v
}
