package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"borderscan/internal/config"
	"borderscan/internal/imaging"
	"borderscan/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// fileReport is the per-image JSON output.
type fileReport struct {
	Path       string                     `json:"path"`
	Format     string                     `json:"format"`
	Width      int                        `json:"width"`
	Height     int                        `json:"height"`
	FrameCount int                        `json:"frame_count"`
	Multiplier float64                    `json:"multiplier"`
	Borders    []scan.BorderSet           `json:"borders"`
	Scaled     []scan.BorderSet           `json:"borders_scaled"`
	Margin     *imaging.MarginColorResult `json:"margin_color,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("borderscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// Scan output goes to stdout; keep logging on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)
	debug := os.Getenv("BORDERSCAN_LOG_LEVEL") == "debug"

	configPtr := flag.String("config", "", "Path to a YAML defaults file")
	thresholdPtr := flag.Float64("threshold", 0.5, "Detection aggressiveness; lower is more conservative")
	indentPtr := flag.Float64("indent", 0.25, "Fraction of each side searched for a border, in (0,1]")
	stripesPtr := flag.Float64("stripes", 1.0, "Column-thinning coefficient, in (0,1]")
	maxStripesPtr := flag.Int("max-stripes", 0, "Cap on sampled columns per side (0 = no cap)")
	fastPtr := flag.Bool("fast", true, "Stop each side after a single refinement iteration")
	sizePtr := flag.Int("size", 0, "Downscale to this working size before scanning (0 = original size)")
	maxFramesPtr := flag.Int("max-frames", 0, "Cap on frames kept from animated sources (0 = all)")
	workersPtr := flag.Int("workers", 0, "Frame scan parallelism (0 = physical core count)")
	seedPtr := flag.Int64("seed", 0, "Random sampling seed (0 = derived from the clock)")
	jsonPtr := flag.Bool("json", false, "Emit JSON instead of text")
	cropPtr := flag.Bool("crop", false, "Write <name>_cropped.png with the detected margins removed")
	overlayPtr := flag.Bool("overlay", false, "Write <name>_borders.png with detected borders drawn in")
	colorPtr := flag.Bool("color", false, "Report the average margin color")
	outDirPtr := flag.String("out-dir", "", "Directory for -crop/-overlay output (default: next to the input)")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "borderscan - detect uninformative margins around image edges")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: borderscan [options] image...")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  BORDERSCAN_LOG_LEVEL=debug    Enable debug logging")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPtr)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Flags the user actually passed win over the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := cfg.ScanOptions()
	if set["threshold"] {
		opts.Threshold = *thresholdPtr
	}
	if set["indent"] {
		opts.Indent = *indentPtr
	}
	if set["stripes"] {
		opts.Stripes = *stripesPtr
	}
	if set["max-stripes"] {
		opts.MaxStripes = *maxStripesPtr
	}
	if set["fast"] {
		opts.Fast = *fastPtr
	}
	if set["workers"] {
		opts.Workers = *workersPtr
	}
	if set["seed"] {
		opts.Seed = *seedPtr
	}
	if opts.Workers == 0 {
		opts.Workers = physicalCores()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	load := imaging.LoadOptions{
		Size:      cfg.Loading.Size,
		MaxFrames: cfg.Loading.MaxFrames,
		Seed:      opts.Seed,
	}
	if set["size"] {
		load.Size = *sizePtr
	}
	if set["max-frames"] {
		load.MaxFrames = *maxFramesPtr
	}

	if debug {
		log.Printf("borderscan v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("options: %+v, load: %+v", opts, load)
	}

	cache := imaging.NewCache()
	reports := make([]fileReport, 0, flag.NArg())
	failed := false
	for _, path := range flag.Args() {
		report := scanFile(cache, path, load, opts, *colorPtr, debug)
		if report.Error != "" {
			failed = true
		} else {
			if *cropPtr {
				if err := writeCrop(cache, path, load, report, *outDirPtr); err != nil {
					log.Printf("Crop failed for %s: %v", path, err)
					failed = true
				}
			}
			if *overlayPtr {
				if err := writeOverlay(cache, path, load, report, *outDirPtr); err != nil {
					log.Printf("Overlay failed for %s: %v", path, err)
					failed = true
				}
			}
		}
		reports = append(reports, report)
	}

	if *jsonPtr {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			log.Fatalf("Failed to encode output: %v", err)
		}
	} else {
		printText(reports)
	}

	if failed {
		os.Exit(1)
	}
}

// scanFile loads one image and runs the multi-frame border scan.
func scanFile(cache *imaging.Cache, path string, load imaging.LoadOptions, opts scan.Options, withColor, debug bool) fileReport {
	report := fileReport{Path: path}

	d, err := cache.Load(path, load)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Format = d.Format
	report.Width = d.Width
	report.Height = d.Height
	report.FrameCount = d.FrameCount
	report.Multiplier = d.Multiplier

	borders, err := scan.Scan(d.Frames, opts)
	if err != nil {
		// Per-frame failures surface in the report but leave the other
		// frames' results intact.
		report.Error = err.Error()
	}
	report.Borders = borders
	report.Scaled = scaleBorders(borders, d.Multiplier)

	if debug {
		log.Printf("%s: %d frame(s), multiplier %.2f, borders %v", path, len(borders), d.Multiplier, borders)
	}

	if withColor && len(report.Scaled) > 0 && !report.Scaled[0].Empty() {
		margin, err := imaging.MarginColor(d.Source, borders[0], d.Multiplier)
		if err != nil {
			log.Printf("Margin color failed for %s: %v", path, err)
		} else {
			report.Margin = margin
		}
	}

	return report
}

// scaleBorders maps working-frame offsets back to source pixels.
func scaleBorders(borders []scan.BorderSet, multiplier float64) []scan.BorderSet {
	scaled := make([]scan.BorderSet, len(borders))
	for i, set := range borders {
		for side, off := range set {
			scaled[i][side] = int(math.Round(float64(off) * multiplier))
		}
	}
	return scaled
}

func writeCrop(cache *imaging.Cache, path string, load imaging.LoadOptions, report fileReport, outDir string) error {
	if len(report.Borders) == 0 || report.Borders[0].Empty() {
		return nil
	}
	d, err := cache.Load(path, load)
	if err != nil {
		return err
	}
	cropped, rect, err := imaging.CropBorders(d.Source, report.Borders[0], d.Multiplier)
	if err != nil {
		return err
	}
	out := outputPath(path, outDir, "_cropped.png")
	if err := imaging.SavePNG(cropped, out); err != nil {
		return err
	}
	log.Printf("Wrote %s (%dx%d)", out, rect.Dx(), rect.Dy())
	return nil
}

func writeOverlay(cache *imaging.Cache, path string, load imaging.LoadOptions, report fileReport, outDir string) error {
	if len(report.Borders) == 0 {
		return nil
	}
	d, err := cache.Load(path, load)
	if err != nil {
		return err
	}
	out := outputPath(path, outDir, "_borders.png")
	if err := imaging.SavePNG(imaging.Overlay(d.Source, report.Borders[0], d.Multiplier), out); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)
	return nil
}

func outputPath(input, outDir, suffix string) string {
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+suffix)
}

func printText(reports []fileReport) {
	for _, r := range reports {
		if r.Error != "" {
			fmt.Printf("%s: error: %s\n", r.Path, r.Error)
			if len(r.Borders) == 0 {
				continue
			}
		}
		fmt.Printf("%s: %s %dx%d, %d frame(s)\n", r.Path, r.Format, r.Width, r.Height, r.FrameCount)
		for i, set := range r.Scaled {
			fmt.Printf("  frame %d: top=%d right=%d bottom=%d left=%d\n",
				i, set.Top(), set.Right(), set.Bottom(), set.Left())
		}
		if r.Margin != nil {
			fmt.Printf("  margin color: %s (hsl %.0f/%.2f/%.2f, %d px)\n",
				r.Margin.Hex, r.Margin.HSL.H, r.Margin.HSL.S, r.Margin.HSL.L, r.Margin.Pixels)
		}
	}
}

// physicalCores asks the OS for the physical core count, falling back to the
// logical count when the probe fails (containers, exotic platforms).
func physicalCores() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
