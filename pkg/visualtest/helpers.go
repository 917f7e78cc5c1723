package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"tabula/pkg/resource"
)

// RenderScene renders a scene file. A width or height of 0 takes the
// scene's canvas size.
func RenderScene(scenePath string, width, height int) (*image.RGBA, error) {
	src, err := os.ReadFile(scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	r := resource.NewSceneRenderer()
	s, err := r.Load(scenePath, src)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		w, h, err := r.CanvasSize(s)
		if err != nil {
			return nil, err
		}
		width, height = w, h
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := r.Paint(s, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderSceneToFile renders a scene file to a PNG file
func RenderSceneToFile(scenePath, outputPath string, width, height int) error {
	img, err := RenderScene(scenePath, width, height)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// UpdateReferenceImage generates a new reference image
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(scenePath, referencePath string) error {
	fmt.Printf("Updating reference image: %s\n", referencePath)
	return RenderSceneToFile(scenePath, referencePath, 0, 0)
}
