package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"tabula/pkg/images"
	"tabula/pkg/layout"
)

// Scene is a loaded scene file.
type Scene struct {
	Root *layout.Table

	// Width and Height are the canvas size, 0 when the file leaves it to
	// the root table's natural size.
	Width, Height int

	// Background is a colour name or hex value, empty when unset.
	Background string

	// Tables maps table labels to tables.
	Tables map[string]*layout.Table
}

type sceneFile struct {
	Width      *int      `hcl:"width,optional"`
	Height     *int      `hcl:"height,optional"`
	Background *string   `hcl:"background,optional"`
	Root       tableBlock `hcl:"table,block"`
}

type tableBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var tableSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "table", LabelNames: []string{"name"}},
		{Type: "rect"},
		{Type: "text"},
		{Type: "image"},
	},
}

// LoadFile reads and loads the scene file at path.
func LoadFile(path string) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}
	return Load(path, src)
}

// Load parses src as an HCL scene. filename is used in diagnostics.
func Load(filename string, src []byte) (*Scene, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", filename, diags)
	}
	var doc sceneFile
	ctx := evalContext()
	if diags := gohcl.DecodeBody(file.Body, ctx, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", filename, diags)
	}

	s := &Scene{Tables: make(map[string]*layout.Table)}
	if doc.Width != nil {
		s.Width = *doc.Width
	}
	if doc.Height != nil {
		s.Height = *doc.Height
	}
	if doc.Background != nil {
		s.Background = *doc.Background
	}
	l := &loader{ctx: ctx, scene: s, dir: filepath.Dir(filename)}
	root, err := l.table(doc.Root.Name, doc.Root.Body, nil)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", filename, err)
	}
	s.Root = root
	tracer().Debugf("loaded scene %s: %d tables", filename, len(s.Tables))
	return s, nil
}

type loader struct {
	ctx   *hcl.EvalContext
	scene *Scene
	dir   string // relative image paths are resolved against dir
}

// cell is an item's place in its parent table.
type cell struct {
	parent *layout.Table
	index  int
}

func (l *loader) table(name string, body hcl.Body, at *cell) (*layout.Table, error) {
	if _, dup := l.scene.Tables[name]; dup {
		return nil, fmt.Errorf("duplicate table %q", name)
	}
	t := layout.NewTable()
	l.scene.Tables[name] = t
	if at != nil {
		at.parent.AddChild(t, at.index, layout.DefaultPlacement())
	}

	content, remain, diags := body.PartialContent(tableSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if err := l.apply(t, attrs, at); err != nil {
		return nil, err
	}

	for _, block := range content.Blocks {
		child := &cell{parent: t, index: t.Len()}
		var err error
		switch block.Type {
		case "table":
			_, err = l.table(block.Labels[0], block.Body, child)
		case "rect":
			err = l.leaf(layout.NewBox(0, 0, 0, 0), block.Body, child)
		case "text":
			err = l.leaf(layout.NewText("", 0, 0, -1), block.Body, child)
		case "image":
			err = l.leaf(layout.NewImage("", 0, 0), block.Body, child)
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (l *loader) leaf(item layout.Node, body hcl.Body, at *cell) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	at.parent.AddChild(item, at.index, layout.DefaultPlacement())
	if err := l.apply(item.(layout.Configurable), attrs, at); err != nil {
		return err
	}
	if img, ok := item.(*layout.Image); ok && img.Path != "" &&
		!filepath.IsAbs(img.Path) && !images.IsDataURI(img.Path) {
		img.Path = filepath.Join(l.dir, img.Path)
	}
	return nil
}

// apply evaluates attrs in source order and sets them on target, or on the
// placement of its cell for placement names.
func (l *loader) apply(target layout.Configurable, attrs hcl.Attributes, at *cell) error {
	sorted := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sorted = append(sorted, attr)
	}
	slices.SortFunc(sorted, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	for _, attr := range sorted {
		v, diags := attr.Expr.Value(l.ctx)
		if diags.HasErrors() {
			return diags
		}
		value, err := toNative(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", attr.Range, attr.Name, err)
		}
		name := strings.ReplaceAll(attr.Name, "_", "-")
		switch {
		case layout.IsChildProperty(name) && at == nil:
			return fmt.Errorf("%s: %s applies to a cell, but the root table has none", attr.Range, attr.Name)
		case layout.IsChildProperty(name):
			err = at.parent.SetChildProperty(at.index, name, value)
		default:
			err = target.SetProperty(name, value)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", attr.Range, err)
		}
	}
	return nil
}
