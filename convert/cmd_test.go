package convert

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLChCmd(t *testing.T) {
	cmd := &LChCmd{Color: "#336699"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := cmd.Run(&out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "rgb\t#336699\t") {
		t.Errorf("rgb line = %q", lines[0])
	}
	for i, prefix := range []string{"rgb\t", "lab\tL=", "lch\tL=", "sliders\tL*="} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestLChCmdSamplesImage(t *testing.T) {
	want := color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, want)

	file := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	fromImage := &LChCmd{Image: file, X: 2, Y: 1}
	if err := fromImage.Validate(nil); err != nil {
		t.Fatal(err)
	}
	var got bytes.Buffer
	if err := fromImage.Run(&got); err != nil {
		t.Fatal(err)
	}

	fromHex := &LChCmd{Color: "#336699"}
	if err := fromHex.Validate(nil); err != nil {
		t.Fatal(err)
	}
	var expected bytes.Buffer
	if err := fromHex.Run(&expected); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(expected.String(), got.String()); diff != "" {
		t.Errorf("sampled output (-hex +image):\n%s", diff)
	}

	outside := &LChCmd{Image: file, X: 3, Y: 0}
	if err := outside.Run(&got); err == nil {
		t.Error("sampling outside the image succeeded")
	}
}

func TestLChCmdValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  LChCmd
	}{
		{"nothing", LChCmd{}},
		{"both", LChCmd{Color: "#fff", Image: "x.png"}},
		{"bad hex", LChCmd{Color: "fff"}},
		{"negative pixel", LChCmd{Image: "x.png", X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRGBCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RGBCmd
		hex     string
		inGamut bool
	}{
		// L=0.5 gray is 0.125 in linear light.
		{"gray", RGBCmd{Lightness: 50}, "#636363", true},
		{"dark gray", RGBCmd{Lightness: 20}, "#1c1c1c", true},
		{"too saturated", RGBCmd{Lightness: 50, Chroma: 100, Hue: 45}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(nil); err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			if err := tt.cmd.Run(&out); err != nil {
				t.Fatal(err)
			}
			got := out.String()
			if !strings.HasPrefix(got, tt.hex) {
				t.Errorf("output %q does not start with %q", got, tt.hex)
			}
			if flag := map[bool]string{true: "in_gamut=true", false: "in_gamut=false"}[tt.inGamut]; !strings.Contains(got, flag) {
				t.Errorf("output %q lacks %q", got, flag)
			}
		})
	}

	if err := (&RGBCmd{Lightness: 50, Hue: 400}).Validate(nil); err == nil {
		t.Error("hue 400 accepted")
	}
}
