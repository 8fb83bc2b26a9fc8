package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/audio"
	"gochip8/pkg/chip8"
	"gochip8/pkg/config"
)

// pixelScale is the size of one machine pixel on screen.
const pixelScale = 10

// keypadLayout maps each CHIP-8 key value 0x0-0xF to a physical key, using
// the conventional 1234/QWER/ASDF/ZXCV layout.
var keypadLayout = [chip8.NumKeys]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// keypad answers held-key queries from the machine via ebiten's key state.
type keypad struct{}

func (keypad) IsPressed(key byte) bool {
	return ebiten.IsKeyPressed(keypadLayout[key&0xF])
}

type Game struct {
	vm     *chip8.Machine
	screen *ebiten.Image // reused 64x32 canvas, scaled up in Draw
}

func (g *Game) Update() error {
	for val, key := range keypadLayout {
		if inpututil.IsKeyJustPressed(key) {
			g.vm.PressKey(byte(val))
		}
	}

	if _, err := g.vm.Frame(time.Now()); err != nil {
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}
	g.screen.WritePixels(g.vm.FramebufferRGBA())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(pixelScale, pixelScale)
	screen.DrawImage(g.screen, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.DisplayWidth * pixelScale, chip8.DisplayHeight * pixelScale
}

func main() {
	romPath := flag.String("rom", "", "ROM image to load")
	speed := flag.Int("speed", chip8.DefaultSpeed, "instructions executed per frame")
	mute := flag.Bool("mute", false, "disable audio output")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	logger := config.CreateLogger(*debug, *quiet)

	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		logger.Fatal("no ROM file given (-rom <file>)")
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		logger.Fatal("reading ROM failed", log.Err(err))
	}

	vm := chip8.NewMachine()
	vm.Speed = *speed
	vm.Keys = keypad{}
	if err := vm.LoadROM(rom); err != nil {
		logger.Fatal("loading ROM failed", log.Err(err))
	}

	if !*mute {
		beeper, err := audio.NewBeeper(audio.DefaultSampleRate)
		if err != nil {
			logger.Error("audio unavailable, running muted", log.Err(err))
		} else {
			vm.Beeper = beeper
		}
	}

	ebiten.SetWindowSize(chip8.DisplayWidth*pixelScale, chip8.DisplayHeight*pixelScale)
	ebiten.SetWindowTitle("gochip8")

	if err := ebiten.RunGame(&Game{vm: vm}); err != nil {
		logger.Fatal("emulation stopped", log.Err(err))
	}
}
