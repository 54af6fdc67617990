// Copyright 2024 The gpssvm Authors
// This file is part of gpssvm.
//
// gpssvm is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gpssvm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gpssvm. If not, see <http://www.gnu.org/licenses/>.

// Command gpssvm runs the GPSS bytecode VM against a built-in scenario or a
// TOML configuration file.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/probecore/gpssvm/config"
	"github.com/probecore/gpssvm/log"
	"github.com/probecore/gpssvm/vm"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML configuration file",
	}
	scenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "built-in scenario to run (s1..s6)",
		Value: "s1",
	}
	startsFlag = cli.UintFlag{
		Name:  "starts",
		Usage: "remaining_starts (START N count)",
		Value: 15,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "RNG seed",
		Value: 1,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "minimum log level, 0 (trace) .. 5 (crit)",
		Value: 2,
	}
	disasmFlag = cli.BoolFlag{
		Name:  "disassemble",
		Usage: "print the scenario's bytecode listing and exit",
	}
	dumpMemoryFlag = cli.BoolFlag{
		Name:  "dump-memory",
		Usage: "print the final memory image as a table after running",
	}
	interactiveFlag = cli.BoolFlag{
		Name:  "interactive",
		Usage: "step through the program one instruction at a time via a console",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "gpssvm"
	app.Usage = "GPSS-style discrete-event bytecode VM"
	app.Flags = []cli.Flag{configFlag, scenarioFlag, startsFlag, seedFlag, verbosityFlag, disasmFlag, dumpMemoryFlag, interactiveFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Root().Crit("gpssvm failed", "err", err)
	}
}

func run(ctx *cli.Context) error {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if ctx.IsSet(scenarioFlag.Name) {
		cfg.Scenario = ctx.String(scenarioFlag.Name)
	}
	if ctx.IsSet(startsFlag.Name) {
		cfg.Starts = uint32(ctx.Uint(startsFlag.Name))
	}
	if ctx.IsSet(seedFlag.Name) {
		cfg.RNGSeed = ctx.Int64(seedFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	log.SetOutput(os.Stderr, log.Level(cfg.Verbosity))

	scenario, ok := scenarios[cfg.Scenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q (known: %v)", cfg.Scenario, scenarioNames())
	}

	if ctx.Bool(disasmFlag.Name) {
		fmt.Print(vm.Disassemble(scenario.Code, int(os.Stdout.Fd())))
		return nil
	}

	logger := log.New("scenario", cfg.Scenario)
	sink := vm.NewWriterSink(os.Stdout)
	interp := vm.New(scenario.Code, scenario.Memory,
		vm.WithStarts(cfg.Starts),
		vm.WithRNG(vm.NewMathRand(cfg.RNGSeed)),
		vm.WithOutput(sink),
		vm.WithLogger(logger),
	)

	if ctx.Bool(interactiveFlag.Name) {
		runErr := runInteractive(interp, logger)
		if err := sink.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
		return runErr
	}

	runErr := interp.Run()
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("scenario %q: %w", cfg.Scenario, runErr)
	}
	logger.Info("halted", "clock_ms", interp.ClockMS(), "remaining_starts", interp.RemainingStarts())
	if ctx.Bool(dumpMemoryFlag.Name) {
		fmt.Print(dumpMemoryTable(interp.Memory()))
	}
	return nil
}
