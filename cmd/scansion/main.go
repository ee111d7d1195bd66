// Command scansion scans files of Latin verse, one line per verse, and
// writes the candidate scansions of every line next to an annotated copy.
//
//	scansion scan aeneis1.txt aeneis2.txt --out scans --stats stats.yaml
//	scansion scan tristia.txt --meter elegiac --dictionary data
//	scansion version
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/dictionary"
	"github.com/cours-de-latin/scansion/internal/config"
	"github.com/cours-de-latin/scansion/internal/logger"
)

const (
	Version = "0.1.0"
	appName = "scansion"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scanFlags are the command-line overrides of the scan command.
type scanFlags struct {
	configPath  string
	meter       string
	maxPasses   int
	dataDir     string
	outDir      string
	previous    string
	statsPath   string
	interactive bool
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Latin verse scansion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(scanCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func scanCmd() *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Scan one or more files of verse",
		Long: `Scan reads each FILE, one verse per line, and refines the scansion of
every line against the meter until it stops changing. The result of FILE
is written to FILE.scan, or to DIR/FILE.scan with --out.

Files are scanned concurrently, each with its own lexicon. --interactive
asks on the terminal about lines left ambiguous and scans files in turn.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, f, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "config file path (YAML)")
	fl.StringVarP(&f.meter, "meter", "m", "", "verse form (hexameter, pentameter, elegiac, trimeter)")
	fl.IntVar(&f.maxPasses, "max-passes", 0, "maximum number of refinement passes")
	fl.StringVarP(&f.dataDir, "dictionary", "d", "", "Collatinus data directory")
	fl.StringVarP(&f.outDir, "out", "o", "", "output directory")
	fl.StringVar(&f.previous, "previous", "", "output of an earlier run to narrow against (single FILE only)")
	fl.StringVar(&f.statsPath, "stats", "", "write run statistics to this YAML file")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "settle ambiguous lines on the terminal")
	return cmd
}

// apply overrides cfg with the flags that were set.
func (f scanFlags) apply(cfg *config.Config) {
	if f.meter != "" {
		cfg.Scan.Meter = f.meter
	}
	if f.maxPasses > 0 {
		cfg.Scan.MaxPasses = f.maxPasses
	}
	if f.dataDir != "" {
		cfg.Dictionary.DataDir = f.dataDir
	}
}

// fileReport is one entry of the statistics file.
type fileReport struct {
	File   string           `yaml:"file"`
	Result *scansion.Result `yaml:"result"`
}

func runScan(cmd *cobra.Command, f scanFlags, files []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	if f.previous != "" && len(files) > 1 {
		return errors.New("--previous applies to a single input file")
	}

	opts, err := cfg.Scan.ScanOptions()
	if err != nil {
		return err
	}
	opts.Logger = log
	if cfg.Dictionary.Enabled() {
		log.Info("loading dictionary", "dir", cfg.Dictionary.DataDir)
		dict, err := dictionary.New(cfg.Dictionary.DataDir, cfg.Dictionary.CacheSize)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}
		log.Info("dictionary loaded", "lemmas", dict.Len())
		opts.Oracle = dict
	}
	if f.previous != "" {
		prev, err := readPrevious(f.previous)
		if err != nil {
			return err
		}
		opts.Previous = prev
	}
	if f.interactive {
		opts.Disambiguator = newPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	reports := make([]fileReport, len(files))
	var g errgroup.Group
	if f.interactive {
		g.SetLimit(1)
	}
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			res, err := scanFile(name, f.outDir, opts, log)
			if err != nil {
				return err
			}
			reports[i] = fileReport{File: name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if f.statsPath != "" {
		if err := writeStats(f.statsPath, reports); err != nil {
			return err
		}
	}
	return nil
}

func scanFile(name, outDir string, opts scansion.Options, log *slog.Logger) (*scansion.Result, error) {
	lines, err := readLines(name)
	if err != nil {
		return nil, err
	}
	opts.Logger = log.With("file", name)
	res, err := scansion.NewScanner(opts).Scan(lines)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}

	out := name + ".scan"
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", outDir, err)
		}
		out = filepath.Join(outDir, filepath.Base(out))
	}
	w, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", out, err)
	}
	if _, err := res.WriteTo(w); err != nil {
		w.Close()
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", out, err)
	}
	opts.Logger.Info("wrote scansion", "out", out, "identified", res.Stats.Identified, "lines", res.Stats.Lines)
	return res, nil
}

func readLines(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

func readPrevious(name string) ([][]scansion.Sequence, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	prev, err := scansion.ReadPrevious(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return prev, nil
}

func writeStats(path string, reports []fileReport) error {
	b, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// prompt is a Disambiguator that asks on a terminal.
type prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompt(in io.Reader, out io.Writer) *prompt {
	return &prompt{in: bufio.NewReader(in), out: out}
}

// Choose shows the line and the word under position and reads "_", "^" or
// an empty answer to decline.
func (p *prompt) Choose(line *scansion.Line, pos int, candidates []scansion.Sequence) (scansion.Quantity, bool) {
	fmt.Fprintf(p.out, "\nline %d: %s\n", line.Index+1, line.Text)
	for _, c := range candidates {
		fmt.Fprintf(p.out, "  %s\n", c)
	}
	if w, syl := line.WordAt(pos); w != nil {
		fmt.Fprintf(p.out, "syllable %d of %q, long (_) or short (^)? ", syl+1, w.Original)
	} else {
		fmt.Fprintf(p.out, "syllable %d, long (_) or short (^)? ", pos+1)
	}
	for {
		answer, err := p.in.ReadString('\n')
		switch strings.TrimSpace(answer) {
		case "_", "-":
			return scansion.Long, true
		case "^", "u":
			return scansion.Short, true
		case "":
			return scansion.Unknown, false
		}
		if err != nil {
			return scansion.Unknown, false
		}
		fmt.Fprint(p.out, "answer _ or ^, or nothing to skip: ")
	}
}
