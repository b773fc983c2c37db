package main

import (
	"flag"
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"

	"github.com/openballistics/trajcore"
)

func main() {
	var (
		muzzleVelocity float64
		elevationDeg   float64
		azimuthDeg     float64
		sightHeight    float64
		cantDeg        float64
		rangeLimitFt   float64
		rangeStepFt    float64
		calcStep       float64
		dragCD         float64
		integratorName string
		outPath        string
	)
	flag.Float64Var(&muzzleVelocity, "mv", 2700, "muzzle velocity, ft/s")
	flag.Float64Var(&elevationDeg, "elevation", 0, "barrel elevation, degrees")
	flag.Float64Var(&azimuthDeg, "azimuth", 0, "barrel azimuth, degrees")
	flag.Float64Var(&sightHeight, "sight-height", 0.15, "sight height above bore axis, ft")
	flag.Float64Var(&cantDeg, "cant", 0, "rifle cant, degrees")
	flag.Float64Var(&rangeLimitFt, "range", 3000, "range limit, ft")
	flag.Float64Var(&rangeStepFt, "range-step", 100, "range step at which to emit records, ft (0 disables)")
	flag.Float64Var(&calcStep, "calc-step", 0.5, "base integration step: seconds for rk4; for euler and euler-cromer it is divided by the relative speed")
	flag.Float64Var(&dragCD, "cd", 0.3, "flat drag coefficient for the constant drag curve")
	flag.StringVar(&integratorName, "integrator", "rk4", "euler, euler-cromer, or rk4")
	flag.StringVar(&outPath, "out", "", "CSV output path (default: stdout)")
	flag.Parse()

	logger := kitlog.NewLogfmtLogger(os.Stderr)
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	var kind trajcore.IntegratorKind
	switch integratorName {
	case "euler":
		kind = trajcore.KindEuler
	case "euler-cromer":
		kind = trajcore.KindEulerCromer
	case "rk4":
		kind = trajcore.KindRK4
	default:
		logger.Log("level", "critical", "message", fmt.Sprintf("unknown integrator %q", integratorName))
		os.Exit(1)
	}

	deg2rad := func(d float64) float64 { return d * 3.14159265358979323846 / 180 }

	props := trajcore.NewShotProps(muzzleVelocity, calcStep, 0, sightHeight, deg2rad(cantDeg))
	props.BarrelElevationRad = deg2rad(elevationDeg)
	props.BarrelAzimuthRad = deg2rad(azimuthDeg)
	dc, code := trajcore.NewDragCurve([]float64{0, 0.8, 1.0, 1.2, 5}, []float64{dragCD, dragCD * 1.05, dragCD * 1.35, dragCD * 1.15, dragCD * 0.9})
	if code != trajcore.NoError {
		logger.Log("level", "critical", "message", "invalid drag curve", "code", code.String())
		os.Exit(1)
	}
	props.DragCurve = dc
	props.Atmo = trajcore.NewStandardAtmosphere()
	props.WindSock = trajcore.NewWindSock(nil)

	engine := trajcore.NewEngine(trajcore.DefaultConfig(), kind, logger)
	filterFlags := trajcore.FlagApex | trajcore.FlagMach
	if rangeStepFt > 0 {
		filterFlags |= trajcore.FlagRange
	}
	records, _, err := engine.Integrate(&props, rangeLimitFt, rangeStepFt, 0, filterFlags)
	if err != nil {
		logger.Log("level", "error", "message", "shot failed", "err", err.Error())
		engine.Errors.LogTo(logger)
		os.Exit(1)
	}

	out := os.Stdout
	if outPath != "" {
		f, ferr := os.Create(outPath)
		if ferr != nil {
			logger.Log("level", "critical", "message", "could not create output file", "err", ferr.Error())
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := trajcore.ExportRecordsCSV(out, records); err != nil {
		logger.Log("level", "critical", "message", "could not write CSV", "err", err.Error())
		os.Exit(1)
	}
	logger.Log("level", "info", "message", "shot complete", "records", len(records))
}
