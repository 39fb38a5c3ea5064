package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/praetorian-inc/snip/pkg/config"
	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/serve"
	"github.com/praetorian-inc/snip/pkg/textenc"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the version of snip along with its supported modes, normalization forms and config file names.",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}

// buildInfo describes this build of snip.
type buildInfo struct {
	Version       string   `json:"version"`
	Commit        string   `json:"commit"`
	ServeProtocol string   `json:"serve_protocol"`
	Modes         []string `json:"modes"`
	Normalization []string `json:"normalization"`
	ConfigFiles   []string `json:"config_files"`
	GoVersion     string   `json:"go_version"`
	Platform      string   `json:"platform"`
}

func currentBuild() buildInfo {
	info := buildInfo{
		Version:       version,
		Commit:        commit,
		ServeProtocol: serve.Version,
		ConfigFiles:   config.FileNames,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}
	for _, k := range []extract.Kind{extract.Fields, extract.Bytes, extract.Chars} {
		info.Modes = append(info.Modes, k.String())
	}
	for _, f := range []textenc.Form{textenc.NFC, textenc.NFD, textenc.NFKC, textenc.NFKD} {
		info.Normalization = append(info.Normalization, f.String())
	}
	return info
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentBuild()
	out := cmd.OutOrStdout()

	if versionJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Fprintf(out, "snip v%s (%s)\n", info.Version, info.Commit)
	fmt.Fprintf(out, "Modes: %s\n", strings.Join(info.Modes, ", "))
	fmt.Fprintf(out, "Normalization: %s\n", strings.Join(info.Normalization, ", "))
	fmt.Fprintf(out, "Config files: %s\n", strings.Join(info.ConfigFiles, ", "))
	fmt.Fprintf(out, "Serve protocol: %s\n", info.ServeProtocol)
	fmt.Fprintf(out, "Built with %s for %s\n", info.GoVersion, info.Platform)
	return nil
}
