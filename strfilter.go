// Package strfilter filters STR flanking reads from aligned sequencing data,
// keeping only alignments that are trustworthy evidence for genotyping a
// target region and partitioning the survivors by sequencing library.
package strfilter

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/guigolab/strfilter/fasta"
	"github.com/guigolab/strfilter/filter"
	"github.com/guigolab/strfilter/region"
	"github.com/guigolab/strfilter/sam"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// Options configures a filtering run.
type Options struct {
	// Bams lists the input BAM files. Each needs a .bai companion index.
	Bams []string
	// ReadGroups resolves BAM filenames to library labels.
	ReadGroups ReadGroups
	// RegionFile holds the STR region definitions.
	RegionFile string
	// FastaDir holds one <chrom>.fa reference file per chromosome.
	FastaDir string
	// Output, when non-empty, receives the annotated surviving alignments.
	Output string
	// MaxRegions caps the number of regions loaded; 0 means no cap.
	MaxRegions int
	// Chrom, when non-empty, restricts the run to one chromosome.
	Chrom string
	// Filter holds the cascade thresholds.
	Filter filter.Config
	// Genotyper receives the per-region read-group buckets. Defaults to
	// NoopGenotyper.
	Genotyper Genotyper
}

// Process runs the per-region filtering pipeline: regions are loaded and
// sorted, then for each region the BAM readers are positioned on its window,
// the overlapping reads are run through the filter cascade, survivors are
// optionally re-emitted with annotations and finally handed, bucketed by
// library, to the genotyper. The first fatal error aborts the whole run. The
// pipeline is strictly sequential: the region order drives the lazy reloading
// of the reference cache.
func Process(opts *Options) error {
	regions, err := region.ReadFiltered(opts.RegionFile, opts.MaxRegions, opts.Chrom)
	if err != nil {
		return err
	}
	region.Order(regions)
	log.Infof("Loaded %d regions from %s", len(regions), opts.RegionFile)

	mr, err := sam.NewMultiReader(opts.Bams...)
	if err != nil {
		return err
	}
	defer mr.Close()

	var writer *sam.Writer
	if opts.Output != "" {
		writer, err = sam.NewWriter(opts.Output, mr.Header())
		if err != nil {
			return err
		}
	}

	genotyper := opts.Genotyper
	if genotyper == nil {
		genotyper = NoopGenotyper{}
	}

	run := &pipeline{
		reader:     mr,
		cache:      fasta.NewCache(opts.FastaDir),
		cascade:    filter.NewCascade(opts.Filter),
		writer:     writer,
		readGroups: opts.ReadGroups,
		genotyper:  genotyper,
	}

	start := time.Now()
	for _, reg := range regions {
		if err = run.processRegion(reg); err != nil {
			break
		}
	}
	if writer != nil {
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	log.Infof("Processed %d regions in %v", len(regions), time.Since(start))
	return nil
}

// pipeline holds the collaborators owned by one run.
type pipeline struct {
	reader     *sam.MultiReader
	cache      *fasta.Cache
	cascade    *filter.Cascade
	writer     *sam.Writer
	readGroups ReadGroups
	genotyper  Genotyper
}

func (p *pipeline) processRegion(reg *region.Region) error {
	log.Infof("Processing region %s", reg)
	if err := p.cache.Ensure(reg.Chrom()); err != nil {
		return err
	}
	if err := p.reader.SetRegion(reg.Chrom(), reg.Start(), reg.Stop()); err != nil {
		return err
	}

	tally := filter.NewTally()
	var survivors []*sam.Record
	for p.reader.Next() {
		rec := p.reader.Record()
		reason := p.cascade.Apply(rec, reg, p.cache.Seq())
		tally.Collect(reason)
		if reason == filter.Pass {
			survivors = append(survivors, rec)
		}
	}
	if err := p.reader.Error(); err != nil {
		return err
	}
	tally.Log(reg)

	if p.writer != nil {
		for _, rec := range survivors {
			if err := p.writer.WriteAnnotated(rec, p.readGroups.Label(rec), reg); err != nil {
				return err
			}
		}
	}

	labels, buckets := p.readGroups.Demux(survivors)
	return p.genotyper.Genotype(reg, labels, buckets)
}
