package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/Garsondee/Sentinel-Sense/internal/game"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

// heightmapScale is the pixel size of one square in written heightmaps.
const heightmapScale = 8

type runConfig struct {
	size     int
	gravity  int
	age      int
	trees    int
	sentries int
}

func (rc runConfig) options(log logrus.FieldLogger) []game.LandscapeOption {
	return []game.LandscapeOption{
		game.WithTrees(rc.trees),
		game.WithSentries(rc.sentries),
		game.WithLogger(log),
	}
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var out string
	var verbose bool
	var rc runConfig

	flag.IntVar(&runs, "runs", 5, "number of landscapes to generate")
	flag.Int64Var(&seedBase, "seed-base", 42, "seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&rc.size, "size", 32, "board width and height")
	flag.IntVar(&rc.gravity, "gravity", 2, "gravity level")
	flag.IntVar(&rc.age, "age", 2, "landscape age")
	flag.IntVar(&rc.trees, "trees", game.DefaultLandscapeConfig.Trees, "tree density")
	flag.IntVar(&rc.sentries, "sentries", game.DefaultLandscapeConfig.Sentries, "sentries to place")
	flag.StringVar(&out, "out", "", "directory for per-seed reports and heightmaps")
	flag.BoolVar(&verbose, "v", false, "log generation phases")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var fs billy.Filesystem
	if out != "" {
		fs = osfs.New(out)
	}

	fmt.Printf("=== Headless Landscape Report ===\n")
	fmt.Printf("runs=%d size=%d gravity=%d age=%d seed_base=%d seed_step=%d\n\n",
		runs, rc.size, rc.gravity, rc.age, seedBase, seedStep)

	reporter := game.NewSurveyReporter()
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		if err := surveySeed(os.Stdout, fs, reporter, i+1, seed, rc, log); err != nil {
			log.WithError(err).WithField("seed", seed).Error("run aborted")
			os.Exit(1)
		}
	}
	printAggregate(os.Stdout, reporter.Summary())
}

// surveySeed generates one landscape, prints its report and, when fs is set,
// writes its artifacts. Seeds that fail generation are counted, not fatal.
func surveySeed(w io.Writer, fs billy.Filesystem, reporter *game.SurveyReporter, runIndex int, seed int64, rc runConfig, log logrus.FieldLogger) error {
	l, err := game.Generate(seed, rc.size, rc.size, rc.gravity, rc.age, rc.options(log)...)
	if errors.Is(err, game.ErrGenerationFailed) {
		reporter.Failed(seed)
		fmt.Fprintf(w, "--- run %d seed=%d FAILED: %v\n\n", runIndex, seed, err)
		return nil
	}
	if err != nil {
		return err
	}
	rep := game.BuildReport(l)
	reporter.Collect(rep)
	printRun(w, runIndex, rep)
	if fs == nil {
		return nil
	}
	return writeArtifacts(fs, l, rep)
}

// writeArtifacts stores seed-<n>.txt (report and board) and seed-<n>.png.
func writeArtifacts(fs billy.Filesystem, l *game.Landscape, rep game.LandscapeReport) error {
	base := fmt.Sprintf("seed-%d", rep.Seed)
	text := rep.Format() + "\n" + l.String()
	if err := writeFile(fs, base+".txt", func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	}); err != nil {
		return err
	}
	return writeFile(fs, base+".png", func(w io.Writer) error {
		return png.Encode(w, game.HeightmapImage(l, heightmapScale))
	})
}

// writeFile creates name on fs and fills it with fill.
func writeFile(fs billy.Filesystem, name string, fill func(io.Writer) error) error {
	f, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

func printRun(w io.Writer, runIndex int, rep game.LandscapeReport) {
	fmt.Fprintf(w, "--- run %d seed=%d ---\n", runIndex, rep.Seed)
	fmt.Fprintf(w, "plateaus=%d peak=%d flat=%d connections=%d\n", rep.Plateaus, rep.Peak, rep.Flat, rep.Connections)
	fmt.Fprintf(w, "trees=%d sentries=%d energy=%d start=%s\n",
		rep.Figures[game.FigureTree], rep.Figures[game.FigureSentry], rep.Energy, rep.PlayerStart)
	fmt.Fprintf(w, "guard_coverage=%.3f player_seen_by=%d\n", rep.GuardCoverage, rep.PlayerSeen)
	for _, v := range rep.Violations {
		fmt.Fprintf(w, "  VIOLATION %s\n", v)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, s game.SurveySummary) {
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprint(w, s.Format())
	if verdict := surveyVerdict(s); verdict != "" {
		fmt.Fprintf(w, "verdict=%s\n", verdict)
	}
}

// surveyVerdict flags surveys worth a second look.
func surveyVerdict(s game.SurveySummary) string {
	switch {
	case s.Runs == 0:
		return ""
	case s.Invalid > 0:
		return "invalid_boards"
	case s.Failed*2 > s.Runs:
		return "mostly_failed"
	case s.Runs > s.Failed && s.MinCoverage == 0:
		return "blind_antagonists"
	default:
		return "ok"
	}
}
