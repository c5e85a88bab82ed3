package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/giftbox/pkg/media"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font/gofont/goregular"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// createTestImage creates a simple 10x10 blue PNG for testing purposes.
func createTestImage(t *testing.T, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, blue)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// createTestWAV writes a short 16-bit stereo PCM WAV file.
func createTestWAV(t *testing.T) string {
	t.Helper()
	const (
		sampleRate = 48000
		channels   = 2
		bits       = 16
		frames     = 4800
	)
	dataSize := frames * channels * bits / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	path := filepath.Join(t.TempDir(), "music.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test wav: %v", err)
	}
	return path
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.imageCache == nil || rm.audioCache == nil || rm.fontFaceCache == nil {
		t.Error("caches not initialized")
	}
	if rm.AudioContext() != testAudioContext {
		t.Error("audioContext not set correctly")
	}
}

// TestLoadImage_Success tests successful image loading.
func TestLoadImage_Success(t *testing.T) {
	path := createTestImage(t, "test.png")
	rm := NewResourceManager(testAudioContext)

	img, err := rm.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 10 {
		t.Errorf("Image dimensions incorrect: got %dx%d, want 10x10", bounds.Dx(), bounds.Dy())
	}
}

// TestLoadImage_CachingMechanism tests that images are cached properly.
func TestLoadImage_CachingMechanism(t *testing.T) {
	path := createTestImage(t, "test_cache.png")
	rm := NewResourceManager(testAudioContext)

	img1, err := rm.LoadImage(path)
	if err != nil {
		t.Fatalf("First LoadImage failed: %v", err)
	}
	img2, err := rm.LoadImage(path)
	if err != nil {
		t.Fatalf("Second LoadImage failed: %v", err)
	}

	if img1 != img2 {
		t.Error("Images are not cached - different instances returned")
	}
}

// TestLoadImage_Errors tests error handling for missing and invalid files.
func TestLoadImage_Errors(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(invalid, []byte("not a valid png"), 0644); err != nil {
		t.Fatalf("Failed to create invalid file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"文件不存在", "nonexistent.png"},
		{"格式无效", invalid},
		{"嵌入资源未初始化", "data/photos/missing.png"},
	}

	rm := NewResourceManager(testAudioContext)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rm.LoadImage(tt.path); err == nil {
				t.Errorf("expected error for %s, got nil", tt.path)
			}
		})
	}
}

// TestLoadImages 跳过加载失败的照片
func TestLoadImages(t *testing.T) {
	a := createTestImage(t, "a.png")
	b := createTestImage(t, "b.png")
	rm := NewResourceManager(testAudioContext)

	images, errs := rm.LoadImages([]string{a, "missing.png", b})
	if len(images) != 2 {
		t.Errorf("got %d images, want 2", len(images))
	}
	if len(errs) != 1 {
		t.Errorf("got %d errors, want 1", len(errs))
	}
}

// TestLoadAudio_FileNotFound tests error handling when audio file doesn't exist.
func TestLoadAudio_FileNotFound(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	if _, err := rm.LoadAudio("nonexistent.mp3"); err == nil {
		t.Error("Expected error for non-existent audio file, got nil")
	}
}

// TestLoadAudio_UnsupportedFormat tests error handling for unsupported audio formats.
func TestLoadAudio_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flac")
	if err := os.WriteFile(path, []byte("dummy audio data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	rm := NewResourceManager(testAudioContext)
	if _, err := rm.LoadAudio(path); err == nil {
		t.Error("Expected error for unsupported audio format, got nil")
	}
}

func TestLoadAudio_WAV(t *testing.T) {
	path := createTestWAV(t)
	rm := NewResourceManager(testAudioContext)

	player, err := rm.LoadAudio(path)
	if err != nil {
		t.Fatalf("LoadAudio failed: %v", err)
	}
	if player == nil {
		t.Fatal("expected a player")
	}
	if again, _ := rm.LoadAudio(path); again != player {
		t.Error("second LoadAudio returned a different player")
	}
}

func TestLoadAudio_NoContext(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.LoadAudio(createTestWAV(t)); err == nil {
		t.Error("expected error without audio context")
	}
}

// TestDefaultFont 默认字体按尺寸缓存
func TestDefaultFont(t *testing.T) {
	rm := NewResourceManager(nil)

	face, err := rm.DefaultFont(24)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}
	if face.Size != 24 || face.Source == nil {
		t.Errorf("face: size=%v source=%v", face.Size, face.Source)
	}

	again, _ := rm.DefaultFont(24)
	if again != face {
		t.Error("DefaultFont should cache faces by size")
	}
	other, _ := rm.DefaultFont(16)
	if other == face || other.Source != face.Source {
		t.Error("different sizes should share the parsed source")
	}
}

func TestLoadFont_FileNotFound(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.LoadFont("missing.ttf", 12); err == nil {
		t.Error("expected error for missing font")
	}
	if len(rm.fontFaceCache) != 0 {
		t.Error("failed font should not be cached")
	}
}

func TestLoadFont_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatalf("Failed to write font file: %v", err)
	}
	rm := NewResourceManager(nil)

	face, err := rm.LoadFont(path, 20)
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}
	if face.Size != 20 || face.Source == nil {
		t.Errorf("face: size=%v source=%v", face.Size, face.Source)
	}
	if again, _ := rm.Font(path, 20); again != face {
		t.Error("Font should return the cached face for the configured file")
	}
}

// TestFont_FallsBackToDefault 字体文件缺失时回退到 Go Regular
func TestFont_FallsBackToDefault(t *testing.T) {
	rm := NewResourceManager(nil)
	def, err := rm.DefaultFont(18)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}

	if face, err := rm.Font("", 18); err != nil || face != def {
		t.Errorf("empty path: got %v, %v; want default face", face, err)
	}
	if face, err := rm.Font("missing.ttf", 18); err != nil || face != def {
		t.Errorf("missing file: got %v, %v; want default face", face, err)
	}
}

// TestAudioManagerLoadMusic 音乐缺失时返回空轨道
func TestAudioManagerLoadMusic(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	am := NewAudioManager(rm)

	track := am.LoadMusic("")
	if err := track.Play(); !errors.Is(err, media.ErrNoMusic) {
		t.Errorf("empty path: got %v, want ErrNoMusic", err)
	}

	track = am.LoadMusic("missing.ogg")
	if err := track.Play(); !errors.Is(err, media.ErrNoMusic) {
		t.Errorf("missing file: got %v, want ErrNoMusic", err)
	}

	track = am.LoadMusic(createTestWAV(t))
	if am.Music() != track {
		t.Error("Music() should return the loaded track")
	}
	track.SetVolume(0.3)
	if track.Volume() != 0.3 {
		t.Errorf("volume: got %v, want 0.3", track.Volume())
	}
}

func TestAudioManagerNotReadyWithoutContext(t *testing.T) {
	if NewAudioManager(NewResourceManager(nil)).IsReady() {
		t.Error("no audio context should never be ready")
	}
	if NewAudioManager(nil).IsReady() {
		t.Error("nil resource manager should never be ready")
	}
}
