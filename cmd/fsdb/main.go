// Command fsdb stores, retrieves and deletes values in an fsdb store from
// the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/fsdb-go/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsdb",
		Short: "Filesystem-backed key-value store",
		Long: `fsdb keeps each value in its own file under a root directory. The file
for a key lives in a directory tree derived from the key's hash, so no
single directory grows too large.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	def := config.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.String("config", "", "path to a YAML configuration file")
	pf.String("root", def.Root, "store root directory")
	pf.Int("segment-length", def.SegmentLength, "digest characters per directory level")
	pf.String("hash", def.Hash, "hash function used to place keys (see 'fsdb hashes')")
	pf.String("backend", def.Backend, "filesystem backend: os, bolt or memory")
	pf.String("bolt-path", def.BoltPath, "database file for the bolt backend")
	pf.Int("cache-size", def.CacheSize, "number of key digests to cache, 0 disables")
	pf.String("log-level", def.LogLevel, "log level: debug, info, warn or error")

	cmd.AddCommand(
		newPutCmd(),
		newGetCmd(),
		newRmCmd(),
		newPathCmd(),
		newBenchCmd(),
		newHashesCmd(),
	)
	return cmd
}

func main() {
	cmd := newRootCmd()
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
