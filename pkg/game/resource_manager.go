package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/giftbox/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of scene resources.
// It provides loading and caching mechanisms for images, audio and fonts,
// ensuring that resources are loaded only once and reused.
//
// Paths starting with "data/" are read from the embedded data FS when it is
// initialized; every other path is read from disk (face photos and music
// passed on the command line).
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// All loading happens on the game goroutine during scene construction.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: path -> Image
	audioCache    map[string]*audio.Player    // Cache for loaded audio players: path -> Player
	audioContext  *audio.Context              // Global audio context for audio decoding
	fontFaceCache map[string]*text.GoTextFace // Cache for text faces: "path:size" -> face
	defaultSource *text.GoTextFaceSource      // Go Regular, parsed lazily
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// audioContext may be nil, in which case LoadAudio always fails.
//
// Example:
//
//	audioContext := audio.NewContext(48000)
//	resourceManager := NewResourceManager(audioContext)
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// AudioContext returns the audio context used for decoding (may be nil).
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Example:
//
//	img, err := rm.LoadImage("photos/us.jpg")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	}
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImages loads every path and skips the ones that fail.
// The returned slice keeps the order of the successfully loaded images.
func (rm *ResourceManager) LoadImages(paths []string) ([]*ebiten.Image, []error) {
	var images []*ebiten.Image
	var errs []error
	for _, p := range paths {
		img, err := rm.LoadImage(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		images = append(images, img)
	}
	return images, errs
}

// LoadAudio loads a looping audio file from the specified path and caches the player.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and WAV (.wav).
//
// The stream is wrapped in an infinite loop, suitable for background music.
// The player is returned ready to play but not started.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", path)
	}

	// Read the entire file into memory so the stream can seek freely
	audioData, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}

	stream, err := decodeAudio(path, bytes.NewReader(audioData), rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// audioStream is the common shape of the Ebitengine decoders.
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio picks the decoder by file extension.
func decodeAudio(path string, r io.ReadSeeker, sampleRate int) (audioStream, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// LoadFont loads a TrueType/OpenType font and creates a text face with the given size.
// The face is cached with a key combining path and size.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFont returns a Go Regular face of the given size.
// Go Regular ships inside the binary, so this only fails if the font data is corrupt.
func (rm *ResourceManager) DefaultFont(size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	if rm.defaultSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to parse default font: %w", err)
		}
		rm.defaultSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.defaultSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// Font returns a face from the configured font file, or Go Regular when path is
// empty or the file cannot be loaded.
func (rm *ResourceManager) Font(path string, size float64) (*text.GoTextFace, error) {
	if path == "" {
		return rm.DefaultFont(size)
	}
	face, err := rm.LoadFont(path, size)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v, falling back to Go Regular", err)
		return rm.DefaultFont(size)
	}
	return face, nil
}
