package core

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xff8000)
	if c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("ColorFromHex: expected (1, ~0.5, 0, 1), got %v", c)
	}
	if math.Abs(float64(c.G)-128.0/255.0) > 1e-6 {
		t.Errorf("ColorFromHex: expected G=%v, got %v", 128.0/255.0, c.G)
	}
}

func TestTransformAppliesRotationBeforeTranslation(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{5, 0, 0}
	tr.Rotation = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})

	// +X rotated about Y lands on -Z, then the translation is added.
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.GetMatrix())
	if math.Abs(float64(p.X()-5)) > 1e-5 || math.Abs(float64(p.Z()+1)) > 1e-5 {
		t.Errorf("GetMatrix: expected (5, 0, -1), got %v", p)
	}
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Logger: expected default logger to be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("SetLogger: expected output to contain message, got %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil): expected silent logger")
	}
}
