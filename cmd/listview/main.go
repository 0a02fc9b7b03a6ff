// Command listview opens a window showing the assembler listing of a
// Pep/10 source file. Arrow keys, page keys and the mouse wheel scroll;
// Escape quits.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"pepasm/internal/config"
	"pepasm/pkg/asm"
	"pepasm/pkg/render"
	"pepasm/pkg/utils"
)

const (
	screenWidth  = 640
	screenHeight = 480
	lineStep     = 15
	statusHeight = 16
)

type Viewer struct {
	page    image.Image
	pageImg *ebiten.Image // created lazily on the first Draw
	status  string
	offset  int
}

func NewViewer(page image.Image, status string) *Viewer {
	return &Viewer{page: page, status: status}
}

// maxOffset is the furthest the page can scroll while still filling the
// view.
func (v *Viewer) maxOffset() int {
	return max(0, v.page.Bounds().Dy()-(screenHeight-statusHeight))
}

// Scroll moves the view by dy pixels, clamped to the page.
func (v *Viewer) Scroll(dy int) {
	v.offset = min(max(v.offset+dy, 0), v.maxOffset())
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	page := screenHeight - statusHeight
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		v.Scroll(lineStep / 3)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		v.Scroll(-lineStep / 3)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.Scroll(page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.Scroll(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.offset = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.offset = v.maxOffset()
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.Scroll(int(-wy * lineStep))
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.pageImg == nil {
		v.pageImg = ebiten.NewImageFromImage(v.page)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(statusHeight-v.offset))
	screen.DrawImage(v.pageImg, op)
	ebitenutil.DebugPrintAt(screen, v.status, 4, 0)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:          "listview source.pep",
		Short:        "Show the assembler listing of a Pep/10 source file in a window",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, status, err := loadListing(cfgPath, args[0])
			if err != nil {
				return err
			}
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(screenWidth, screenHeight)
			ebiten.SetWindowTitle("Pep/10 listing: " + args[0])
			return ebiten.RunGame(NewViewer(page, status))
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "YAML configuration file")
	return cmd
}

// loadListing assembles the file at path and rasterises its listing,
// appending any diagnostics below the code.
func loadListing(cfgPath, path string) (image.Image, string, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", err
	}
	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fullPath, _, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, "", err
	}
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, "", err
	}

	a := asm.NewAssembler(asm.Options{BaseAddress: cfg.BaseAddress, OSSymbols: cfg.OSSymbols, Logger: log})
	res := a.Translate(string(source))
	rows := res.Listing()
	status := fmt.Sprintf("%s  %d bytes", path, len(res.ObjectCode()))
	if n := len(res.Diagnostics); n > 0 {
		rows = append(rows, "", fmt.Sprintf("%d diagnostics:", n))
		rows = append(rows, res.Diagnostics...)
		status += fmt.Sprintf("  %d errors", n)
		log.Warn("assembly has diagnostics", "file", path, "count", n)
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}

	title := cfg.Listing.Title
	if title == "" {
		title = path
	}
	return render.Listing(rows, render.Options{Title: title, Scale: cfg.Listing.Scale}), status, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
