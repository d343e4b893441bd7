package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toposcope/toposcope/scene"
)

func testScene() (*scene.Scene, *scene.Camera) {
	s := scene.New()
	s.Background = "#212121"

	link := &scene.Primitive{
		Kind:     scene.KindLink,
		Line:     &scene.LineGeometry{},
		Material: &scene.Material{Color: "#616161"},
	}
	link.Line.SetEndpoints(scene.Vec3{X: -50}, scene.Vec3{X: 50})
	s.Add(link)

	mat := &scene.Material{Color: "#2979FF"}
	geo := &scene.CircleGeometry{Radius: 5, Segments: 32}
	for _, x := range []float64{-50, 50} {
		s.Add(&scene.Primitive{
			Kind:     scene.KindNode,
			Position: scene.Vec3{X: x, Z: 1},
			Scale:    1,
			Circle:   geo,
			Material: mat,
		})
	}
	return s, scene.NewCamera(800, 600)
}

func TestNewRendererByFormat(t *testing.T) {
	for _, format := range []string{"png", "svg"} {
		r, err := New(format)
		require.NoError(t, err)
		assert.NotEmpty(t, r.Name())
	}
	_, err := New("webgl")
	assert.Error(t, err)
}

func TestRasterRendererProducesPNG(t *testing.T) {
	s, c := testScene()
	data, err := (&RasterRenderer{}).Render(s, c, 800, 600)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	// A node sits at the projected center of the left node position.
	r, g, b, _ := img.At(350, 300).RGBA()
	assert.False(t, r>>8 == 0x21 && g>>8 == 0x21 && b>>8 == 0x21,
		"node pixel should differ from background")
}

func TestSVGRendererDrawsPrimitives(t *testing.T) {
	s, c := testScene()
	data, err := (&SVGRenderer{}).Render(s, c, 800, 600)
	require.NoError(t, err)

	out := string(data)
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Equal(t, 1, strings.Count(out, "<line"))
	assert.Contains(t, out, `fill="#2979FF"`)

	// Links precede nodes in draw order due to the node depth plane.
	assert.Less(t, strings.Index(out, "<line"), strings.Index(out, "<circle"))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#4285F4")
	assert.Equal(t, uint8(0x42), r)
	assert.Equal(t, uint8(0x85), g)
	assert.Equal(t, uint8(0xF4), b)

	r, g, b = parseHexColor("#fff")
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), g)
	assert.Equal(t, uint8(255), b)
}
