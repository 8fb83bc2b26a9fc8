//go:build !js

// Command gochip8 runs a ROM headlessly for a fixed number of logical frames
// and reports the final machine state, optionally writing a screenshot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/config"
)

func main() {
	romPath := flag.String("rom", "", "ROM image to load")
	frames := flag.Int("frames", 600, "number of logical frames to run")
	speed := flag.Int("speed", chip8.DefaultSpeed, "instructions executed per frame")
	screenshot := flag.String("screenshot", "", "write a PNG of the final framebuffer to this path")
	scale := flag.Int("scale", 10, "screenshot scale factor")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	logger := config.CreateLogger(*debug, *quiet)

	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		flag.Usage()
		logger.Fatal("no ROM file given (-rom <file>)")
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		logger.Fatal("reading ROM failed", log.Err(err))
	}

	vm := chip8.NewMachine()
	vm.Speed = *speed
	if err := vm.LoadROM(rom); err != nil {
		logger.Fatal("loading ROM failed", log.Err(err))
	}

	now := time.Now()
	for i := 0; i < *frames; i++ {
		if _, err := vm.Frame(now); err != nil {
			logger.Error("execution halted", log.Err(err))
			break
		}
		now = now.Add(chip8.FrameInterval)
	}

	fmt.Printf(
		"run complete (%s): PC=0x%04X I=0x%04X DT=%d ST=%d stack=%d paused=%t\n",
		*romPath, vm.PC, vm.I, vm.Delay, vm.Sound, len(vm.Stack), vm.Paused,
	)
	for r, v := range vm.V {
		fmt.Printf("V%X=0x%02X ", r, v)
	}
	fmt.Println()

	if *screenshot != "" {
		if err := vm.SaveScreenshot(*screenshot, *scale); err != nil {
			logger.Fatal("writing screenshot failed", log.Err(err))
		}
		logger.Info("screenshot written")
	}
}
