package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guigolab/strfilter"
	"github.com/guigolab/strfilter/filter"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var (
	input, readGroups, regions, fastaDir, output, chrom, loglevel string
	maxRegions                                                    int
	cfg                                                           filter.Config
)

func run(cmd *cobra.Command, args []string) (err error) {
	// Set loglevel
	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)

	logger := log.WithFields(log.Fields{
		"version":   version,
		"commit":    commit,
		"buildTime": date,
	})
	logger.Infof("Running %s %s", cmd.Use, strfilter.Version())

	bams := strings.Split(input, ",")
	rg, err := parseReadGroups(bams, readGroups)
	if err != nil {
		return
	}

	return strfilter.Process(&strfilter.Options{
		Bams:       bams,
		ReadGroups: rg,
		RegionFile: regions,
		FastaDir:   fastaDir,
		Output:     output,
		MaxRegions: maxRegions,
		Chrom:      chrom,
		Filter:     cfg,
	})
}

// parseReadGroups pairs the comma-separated library labels with the input BAM
// files. Without labels every file is its own library.
func parseReadGroups(bams []string, labels string) (strfilter.ReadGroups, error) {
	rg := make(strfilter.ReadGroups)
	if labels == "" {
		return rg, nil
	}
	names := strings.Split(labels, ",")
	if len(names) != len(bams) {
		return nil, fmt.Errorf("got %d read groups for %d BAM files", len(names), len(bams))
	}
	for i, bam := range bams {
		rg[bam] = names[i]
	}
	return rg, nil
}

func setStrfilterFlags(c *cobra.Command) {
	def := filter.DefaultConfig()
	c.PersistentFlags().StringVarP(&input, "input", "i", "", "comma-separated input BAM files (required)")
	c.PersistentFlags().StringVarP(&readGroups, "read-groups", "g", "", "comma-separated library labels, one per input BAM")
	c.PersistentFlags().StringVarP(&regions, "regions", "r", "", "STR region file (required)")
	c.PersistentFlags().StringVarP(&fastaDir, "fasta", "f", "", "directory with one <chrom>.fa file per chromosome (required)")
	c.PersistentFlags().StringVarP(&output, "output", "o", "", "annotated BAM output file for spanning reads")
	c.PersistentFlags().StringVarP(&chrom, "chrom", "c", "", "only process regions on this chromosome")
	c.PersistentFlags().IntVarP(&maxRegions, "max-regions", "n", 0, "maximum number of regions to process")
	c.PersistentFlags().StringVarP(&loglevel, "loglevel", "", "warn", "logging level")
	c.PersistentFlags().IntVarP(&cfg.MaxMateDist, "max-mate-dist", "", def.MaxMateDist, "maximum mate pair distance; 0 disables the check")
	c.PersistentFlags().IntVarP(&cfg.MinFlank, "min-flank", "", def.MinFlank, "minimum flank length on each side of the STR; 0 disables the check")
	c.PersistentFlags().IntVarP(&cfg.MinBpBeforeIndel, "min-bp-before-indel", "", def.MinBpBeforeIndel, "minimum bases between each read end and the nearest indel; 0 disables the check")
	c.PersistentFlags().IntVarP(&cfg.MaxEndMatchWindow, "max-end-match-window", "", def.MaxEndMatchWindow, "window for the maximal end match comparison; 0 disables the check")
	c.PersistentFlags().IntVarP(&cfg.MinEndMatch, "min-end-match", "", def.MinEndMatch, "minimum perfectly matching bases at each read end; 0 disables the check")
	c.PersistentFlags().BoolVarP(&cfg.RemoveMultimapped, "remove-multimapped", "m", false, "remove multimapping reads")
	c.MarkPersistentFlagRequired("input")
	c.MarkPersistentFlagRequired("regions")
	c.MarkPersistentFlagRequired("fasta")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func buildVersion(version, commit, date string) string {
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "strfilter",
		Short:   "STR spanning-read filtering",
		Long:    "strfilter - filter STR spanning reads and partition them by read group",
		RunE:    run,
		Version: buildVersion(version, commit, date),
	}

	setStrfilterFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Debug(err)
	}
}
