package render

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// SurfaceTexture is a generated texture and the average color the rasterizer paints with
type SurfaceTexture struct {
	Image   *image.RGBA
	Average RGB
}

// Textures are synthesized once per renderer from the palette and seed
type Textures struct {
	Carpet  SurfaceTexture
	Ceiling SurfaceTexture
	Wall    SurfaceTexture
	Pillar  SurfaceTexture
}

type texelFunc func(r *vmath.FastRand, i, j int) RGB

// GenerateTextures builds every surface texture deterministically from seed
func GenerateTextures(colors config.Colors, seed int64) *Textures {
	carpet := FromColorful(colors.Carpet)
	floor := FromColorful(colors.Floor)
	ceiling := FromColorful(colors.Ceiling)
	wall := FromColorful(colors.Wall)
	pillar := FromColorful(colors.Pillar)

	return &Textures{
		Carpet: synthesize(seed, "carpet", func(r *vmath.FastRand, i, j int) RGB {
			base := Lerp(carpet, floor, r.Float64()*0.3)
			return Offset(base, r.IntRange(-15, 15))
		}),
		Ceiling: synthesize(seed, "ceiling", func(r *vmath.FastRand, i, j int) RGB {
			pattern := math.Sin(float64(i)*0.5) * math.Cos(float64(j)*0.5)
			n := float64(r.IntRange(-10, 10))
			return RGB{
				R: clamp(float64(ceiling.R) + pattern*10 + n),
				G: clamp(float64(ceiling.G) + pattern*10 + n),
				B: clamp(float64(ceiling.B) + pattern*5 + n),
			}
		}),
		Wall: synthesize(seed, "wall", func(r *vmath.FastRand, i, j int) RGB {
			stripe := 0
			if i%8 < 2 {
				stripe = -3
			}
			return Offset(wall, r.IntRange(-12, 12)+stripe)
		}),
		Pillar: synthesize(seed, "pillar", func(r *vmath.FastRand, i, j int) RGB {
			return Offset(pillar, r.IntRange(-10, 10))
		}),
	}
}

func synthesize(seed int64, tag string, texel texelFunc) SurfaceTexture {
	const n = parameter.TextureSize
	r := vmath.KeyStream(seed, "texture:"+tag)
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	fb := NewFramebuffer(img)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fb.Set(i, j, texel(r, i, j))
		}
	}
	smooth := blur.Gaussian(img, parameter.TextureBlurRadius)
	return SurfaceTexture{Image: smooth, Average: averageColor(smooth)}
}

func averageColor(img *image.RGBA) RGB {
	b := img.Bounds()
	var sr, sg, sb, count uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			sr += uint64(img.Pix[i])
			sg += uint64(img.Pix[i+1])
			sb += uint64(img.Pix[i+2])
			count++
		}
	}
	if count == 0 {
		return RGBBlack
	}
	return RGB{uint8(sr / count), uint8(sg / count), uint8(sb / count)}
}
