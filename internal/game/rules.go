package game

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// PlacementRules are expressions that decide where the distributor may put
// figures. Band rules are boolean over altitude and peak; TreeDensity yields
// trees per flat square at one altitude and may also read trees (per 200).
// An empty field falls back to DefaultPlacementRules.
type PlacementRules struct {
	Robot       string
	Tower       string
	Sentry      string
	TreeDensity string
}

// DefaultPlacementRules reproduce the classic distribution: the robot in the
// lowlands, the tower on the peak, sentries in the upper third and trees
// thinning out above half the peak height.
var DefaultPlacementRules = PlacementRules{
	Robot:       "altitude == 0",
	Tower:       "altitude == peak",
	Sentry:      "altitude >= ceil(peak * 2 / 3) && altitude <= peak",
	TreeDensity: "altitude > floor(peak * 3 / 4) ? 0.0 : (altitude > floor(peak / 2) ? 0.6 : 1.2) * trees / 200",
}

// placementEnv is the variable set visible to placement expressions.
type placementEnv struct {
	Altitude int `expr:"altitude"`
	Peak     int `expr:"peak"`
	Trees    int `expr:"trees"`
}

type placementPrograms struct {
	robot       *vm.Program
	tower       *vm.Program
	sentry      *vm.Program
	treeDensity *vm.Program
}

func (r PlacementRules) withDefaults() PlacementRules {
	if r.Robot == "" {
		r.Robot = DefaultPlacementRules.Robot
	}
	if r.Tower == "" {
		r.Tower = DefaultPlacementRules.Tower
	}
	if r.Sentry == "" {
		r.Sentry = DefaultPlacementRules.Sentry
	}
	if r.TreeDensity == "" {
		r.TreeDensity = DefaultPlacementRules.TreeDensity
	}
	return r
}

// compile checks and compiles every rule. Failures are configuration errors.
func (r PlacementRules) compile() (*placementPrograms, error) {
	r = r.withDefaults()
	compileBand := func(name, src string) (*vm.Program, error) {
		prog, err := expr.Compile(src, expr.Env(placementEnv{}), expr.AsBool())
		if err != nil {
			return nil, configError("placement rule %s %q: %v", name, src, err)
		}
		return prog, nil
	}
	var p placementPrograms
	var err error
	if p.robot, err = compileBand("robot", r.Robot); err != nil {
		return nil, err
	}
	if p.tower, err = compileBand("tower", r.Tower); err != nil {
		return nil, err
	}
	if p.sentry, err = compileBand("sentry", r.Sentry); err != nil {
		return nil, err
	}
	p.treeDensity, err = expr.Compile(r.TreeDensity, expr.Env(placementEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, configError("placement rule tree density %q: %v", r.TreeDensity, err)
	}
	return &p, nil
}

func evalBand(prog *vm.Program, env placementEnv) (bool, error) {
	out, err := vm.Run(prog, env)
	if err != nil {
		return false, fmt.Errorf("evaluate band at altitude %d: %w", env.Altitude, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

func evalDensity(prog *vm.Program, env placementEnv) (float64, error) {
	out, err := vm.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate tree density at altitude %d: %w", env.Altitude, err)
	}
	d, _ := out.(float64)
	return d, nil
}
