package renderer

import (
	"DiceScene/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	Fallbacks      int
	ActiveTextures int
}

// TextureManager manages texture loading, caching, and lifecycle
type TextureManager struct {
	textureCache    map[string]uint32 // path -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> path (for debugging)
	mu              sync.RWMutex
	stats           TextureStats
}

// NewTextureManager creates a new texture manager instance
func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
	}
}

// DecodeImageFile reads any registered image format (png, jpeg, bmp, webp)
// into tightly packed RGBA.
func DecodeImageFile(filePath string) (*image.RGBA, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func uploadRGBA(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return textureID
}

// LoadTexture loads a texture from file or returns cached texture ID
// Automatically increments reference count
func (tm *TextureManager) LoadTexture(filePath string) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, ok := tm.hit(filePath); ok {
		return textureID, nil
	}

	tm.stats.CacheMisses++
	rgba, err := DecodeImageFile(filePath)
	if err != nil {
		return 0, err
	}
	textureID := uploadRGBA(rgba)
	tm.store(filePath, textureID)

	logger.Log.Info("Texture loaded and cached",
		zap.String("path", filePath),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Size().X),
		zap.Int("height", rgba.Rect.Size().Y))

	return textureID, nil
}

// LoadTextureOrFallback loads filePath, and on failure uploads fallback under
// the same cache key so later lookups of the path share it. The error is only
// returned when there is no fallback.
func (tm *TextureManager) LoadTextureOrFallback(filePath string, fallback image.Image) (uint32, error) {
	textureID, err := tm.LoadTexture(filePath)
	if err == nil || fallback == nil {
		return textureID, err
	}

	logger.Log.Warn("Texture unavailable, using placeholder",
		zap.String("path", filePath),
		zap.Error(err))

	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.stats.Fallbacks++
	textureID = uploadRGBA(toRGBA(fallback))
	tm.store(filePath, textureID)
	return textureID, nil
}

// CreateTextureFromImage creates a texture from an image.Image
// Used for embedded textures like default texture
func (tm *TextureManager) CreateTextureFromImage(img image.Image, name string) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("texture %q: nil image", name)
	}
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, ok := tm.hit(name); ok {
		return textureID, nil
	}

	textureID := uploadRGBA(toRGBA(img))
	tm.store(name, textureID)

	logger.Log.Debug("Texture created from image",
		zap.String("name", name),
		zap.Uint32("textureID", textureID))

	return textureID, nil
}

func (tm *TextureManager) hit(key string) (uint32, bool) {
	textureID, exists := tm.textureCache[key]
	if !exists {
		return 0, false
	}
	tm.textureRefCount[textureID]++
	tm.stats.CacheHits++

	logger.Log.Debug("Texture cache hit",
		zap.String("path", key),
		zap.Uint32("textureID", textureID),
		zap.Int("refCount", tm.textureRefCount[textureID]))
	return textureID, true
}

func (tm *TextureManager) store(key string, textureID uint32) {
	tm.textureCache[key] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = key
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount

	if refCount <= 0 {
		gl.DeleteTextures(1, &textureID)

		path := tm.texturePaths[textureID]
		delete(tm.textureCache, path)
		delete(tm.textureRefCount, textureID)
		delete(tm.texturePaths, textureID)
		tm.stats.ActiveTextures--

		logger.Log.Debug("Texture freed",
			zap.Uint32("textureID", textureID),
			zap.String("path", path))
	}
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Int("fallbacks", stats.Fallbacks))
}

// Clear releases all textures (for cleanup/testing)
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		id := textureID
		gl.DeleteTextures(1, &id)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
	tm.stats.ActiveTextures = 0
}
