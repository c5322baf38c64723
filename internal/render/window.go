package render

import (
	"context"
	"image/color"
	"math"

	"follow/internal/debug"
	"follow/internal/follow"
	"follow/internal/page"
	"follow/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window draws a page in a raylib window, scaled to fit or fill it the way a
// wallpaper is.
type Window struct {
	stage
	bgColor      color.RGBA
	sceneWidth   int
	sceneHeight  int
	scalingMode  string
	renderScale  float64
	sceneOffsetX float64
	sceneOffsetY float64
	localPointer bool
	lastMouse    rl.Vector2
}

type WindowOptions struct {
	Width   int
	Height  int
	Scaling string
	// LocalPointer reads the pointer from the window. Disable it when a global
	// pointer source feeds the page instead.
	LocalPointer bool
}

func NewWindow(doc *page.Document, options WindowOptions) *Window {
	width, height := options.Width, options.Height
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}

	return &Window{
		stage:        stage{doc: doc},
		bgColor:      color.RGBA{R: 24, G: 24, B: 28, A: 255},
		sceneWidth:   width,
		sceneHeight:  height,
		scalingMode:  options.Scaling,
		renderScale:  1.0,
		localPointer: options.LocalPointer,
		lastMouse:    rl.NewVector2(-1, -1),
	}
}

func (window *Window) Run(ctx context.Context, fps int) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(window.sceneWidth), int32(window.sceneHeight), "follow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(fps))
	window.doc.SetViewport(float64(window.sceneWidth), float64(window.sceneHeight))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	screenWidth := rl.GetScreenWidth()
	screenHeight := rl.GetScreenHeight()

	scaleW := float64(screenWidth) / float64(window.sceneWidth)
	scaleH := float64(screenHeight) / float64(window.sceneHeight)

	if window.scalingMode == "fill" {
		window.renderScale = math.Max(scaleW, scaleH)
	} else {
		window.renderScale = math.Min(scaleW, scaleH)
	}

	window.sceneOffsetX = (float64(screenWidth) - float64(window.sceneWidth)*window.renderScale) / 2
	window.sceneOffsetY = (float64(screenHeight) - float64(window.sceneHeight)*window.renderScale) / 2

	if window.localPointer {
		mPos := rl.GetMousePosition()
		if mPos != window.lastMouse {
			window.lastMouse = mPos
			x := (float64(mPos.X) - window.sceneOffsetX) / window.renderScale
			y := (float64(mPos.Y) - window.sceneOffsetY) / window.renderScale
			window.doc.MovePointer(x, y)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		window.doc.ScrollBy(0, -float64(wheel)*scrollStep)
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		window.toggleOverlay()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		window.refresh()
	}
}

func (window *Window) Draw() {
	rl.ClearBackground(window.bgColor)

	sceneRectX := int32(window.sceneOffsetX)
	sceneRectY := int32(window.sceneOffsetY)
	sceneRectW := int32(float64(window.sceneWidth) * window.renderScale)
	sceneRectH := int32(float64(window.sceneHeight) * window.renderScale)
	rl.BeginScissorMode(sceneRectX, sceneRectY, sceneRectW, sceneRectH)

	for _, box := range window.doc.Boxes() {
		r := window.displayed(box)

		x := window.sceneOffsetX + r.Left()*window.renderScale
		y := window.sceneOffsetY + r.Top()*window.renderScale
		w := math.Abs(r.Width) * window.renderScale
		h := math.Abs(r.Height) * window.renderScale

		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), box.Background)
		if box.Label != "" {
			rl.DrawText(box.Label, int32(x)+4, int32(y)+4, 16, rl.Black)
		}
	}

	rl.EndScissorMode()

	if snapshot, ok := window.snapshot(); ok {
		root := window.doc.Bounds()
		snapshot.Draw(debug.Viewport{
			Scale:   window.renderScale,
			OffsetX: window.sceneOffsetX,
			OffsetY: window.sceneOffsetY,
			Origin:  follow.Position{X: root.Left(), Y: root.Top()},
		}, 14)
	}
}
