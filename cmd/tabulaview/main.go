// Command tabulaview shows a scene in a window and lays it out again
// whenever the window is resized.
package main

import (
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"tabula/pkg/resource"
	"tabula/pkg/scene"
)

func main() {
	a := app.New()
	w := a.NewWindow("tabula")
	w.Resize(fyne.NewSize(800, 600))

	canvasImg := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	canvasImg.FillMode = canvas.ImageFillStretch

	status := widget.NewLabel("Enter a scene file and press Enter")
	view := &sceneView{
		renderer: resource.NewSceneRenderer(),
		img:      canvasImg,
		status:   status,
	}

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("scene.hcl")
	pathEntry.OnSubmitted = func(path string) {
		if err := view.load(path); err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		w.SetTitle(fmt.Sprintf("tabula: %s", path))
	}
	if len(os.Args) > 1 {
		pathEntry.SetText(os.Args[1])
		pathEntry.OnSubmitted(os.Args[1])
	}

	// Layout: path bar on top, status at bottom, scene fills center
	content := container.NewBorder(pathEntry, status, nil, nil, container.New(view, canvasImg))
	w.SetContent(content)
	w.Canvas().Focus(pathEntry)
	w.ShowAndRun()
}

// sceneView is a fyne layout that repaints the scene at the size it is
// given.
type sceneView struct {
	renderer *resource.SceneRenderer
	scene    *scene.Scene
	img      *canvas.Image
	status   *widget.Label
	size     fyne.Size
}

func (v *sceneView) load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := v.renderer.Load(path, src)
	if err != nil {
		return err
	}
	v.scene = s
	v.paint()
	return nil
}

func (v *sceneView) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(64, 64)
}

func (v *sceneView) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size != v.size {
		v.size = size
		v.paint()
	}
}

func (v *sceneView) paint() {
	if v.scene == nil || v.size.Width < 1 || v.size.Height < 1 {
		return
	}
	target := image.NewRGBA(image.Rect(0, 0, int(v.size.Width), int(v.size.Height)))
	if err := v.renderer.Paint(v.scene, target); err != nil {
		v.status.SetText("Render error: " + err.Error())
		return
	}
	v.img.Image = target
	v.img.Refresh()
	root := v.scene.Root
	v.status.SetText(fmt.Sprintf("%dx%d, %d rows x %d columns", target.Bounds().Dx(), target.Bounds().Dy(), root.Rows(), root.Columns()))
}
