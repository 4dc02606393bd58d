package systems

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"bead-mixer/components"
)

// SpriteSize is the side in pixels of the generated bead sprites
const SpriteSize = 64

var (
	white     = color.RGBA{255, 255, 255, 255}
	wallGreen = color.RGBA{40, 160, 60, 255}
	beadBlue  = color.RGBA{40, 80, 200, 255}
)

// Textures holds one sprite per surface texture
type Textures struct {
	images  map[components.Texture]image.Image
	sprites map[components.Texture]*ebiten.Image
}

// NewTextures creates the striped sphere sprites of the wall and loose beads
func NewTextures() *Textures {
	return &Textures{
		images: map[components.Texture]image.Image{
			components.TextureWall: BeadImage(wallGreen, white, SpriteSize),
			components.TextureBead: BeadImage(beadBlue, white, SpriteSize),
		},
		sprites: make(map[components.Texture]*ebiten.Image),
	}
}

// Load replaces the sprite of tex with an image file
func (t *Textures) Load(tex components.Texture, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open texture: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode texture %s: %w", filename, err)
	}
	t.images[tex] = img
	delete(t.sprites, tex)
	return nil
}

// TextureFiles names the image files LoadDir looks for
var TextureFiles = map[components.Texture]string{
	components.TextureWall: "greenwhite.png",
	components.TextureBead: "bluwhite.png",
}

// LoadDir replaces the generated sprites with the files of TextureFiles found
// in dir and returns how many were loaded. Missing files keep their sprite.
func (t *Textures) LoadDir(dir string) (int, error) {
	loaded := 0
	for _, tex := range []components.Texture{components.TextureWall, components.TextureBead} {
		path := filepath.Join(dir, TextureFiles[tex])
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := t.Load(tex, path); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

// Sprite returns the GPU image of tex, or nil when tex has no sprite
func (t *Textures) Sprite(tex components.Texture) *ebiten.Image {
	if sprite, ok := t.sprites[tex]; ok {
		return sprite
	}
	img, ok := t.images[tex]
	if !ok {
		return nil
	}
	sprite := ebiten.NewImageFromImage(img)
	t.sprites[tex] = sprite
	return sprite
}

// BeadImage draws a lit sphere of the given pixel size with alternating
// latitude bands of base and stripe. Pixels outside the disc are transparent.
func BeadImage(base, stripe color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := [3]float64{-0.4, -0.5, 0.77}
	half := float64(size) / 2

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			dx := (float64(px) + 0.5 - half) / half
			dy := (float64(py) + 0.5 - half) / half
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			dz := math.Sqrt(1 - d2)

			band := int((math.Asin(dy)/math.Pi + 0.5) * 8)
			c := base
			if band%2 == 1 {
				c = stripe
			}

			lit := dx*light[0] + dy*light[1] + dz*light[2]
			shade := 0.35 + 0.65*math.Max(0, lit)
			img.SetRGBA(px, py, color.RGBA{
				R: uint8(float64(c.R) * shade),
				G: uint8(float64(c.G) * shade),
				B: uint8(float64(c.B) * shade),
				A: 255,
			})
		}
	}
	return img
}
