//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/example/retouch/internal/imageio"
)

func TestPortalOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	tests := []struct {
		name       string
		opts       Options
		wantCursor string
	}{
		{name: "defaults", opts: Options{}, wantCursor: "hidden"},
		{name: "interactive with cursor", opts: Options{Interactive: true, IncludeCursor: true}, wantCursor: "embedded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := portalOptions(tc.opts)
			if got := boolVariant(t, values, "interactive"); got != tc.opts.Interactive {
				t.Fatalf("interactive = %v, want %v", got, tc.opts.Interactive)
			}
			if got := boolVariant(t, values, "modal"); got != tc.opts.Interactive {
				t.Fatalf("modal = %v, want %v", got, tc.opts.Interactive)
			}
			if got := stringVariant(t, values, "cursor_mode"); got != tc.wantCursor {
				t.Fatalf("cursor_mode = %q, want %q", got, tc.wantCursor)
			}
			if got := stringVariant(t, values, "handle_token"); got != "test-token" {
				t.Fatalf("handle_token = %q", got)
			}
			if len(values) != 4 {
				t.Fatalf("expected 4 options, got %d", len(values))
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	ok := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}
	tests := []struct {
		name    string
		body    []any
		want    string
		wantErr error
	}{
		{name: "success", body: []any{uint32(0), ok}, want: "/tmp/Screenshot one.png"},
		{name: "cancelled", body: []any{uint32(1), ok}, wantErr: ErrCancelled},
		{name: "failed", body: []any{uint32(2), ok}},
		{name: "short", body: []any{uint32(0)}},
		{name: "missing uri", body: []any{uint32(0), map[string]dbus.Variant{}}},
		{name: "remote uri", body: []any{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("https://example.com/a.png")}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseResponse(tc.body)
			if tc.want != "" {
				if err != nil || got != tc.want {
					t.Fatalf("parseResponse = %q, %v; want %q", got, err, tc.want)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := imageio.Save(path, image.NewRGBA(image.Rect(0, 0, 3, 2)), imageio.Options{}); err != nil {
		t.Fatal(err)
	}
	img, err := loadAndRemove(path)
	if err != nil {
		t.Fatalf("loadAndRemove: %v", err)
	}
	if !img.Bounds().Eq(image.Rect(0, 0, 3, 2)) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temporary file should be gone, stat err = %v", err)
	}
}

func boolVariant(t *testing.T, values map[string]dbus.Variant, key string) bool {
	t.Helper()
	variant, ok := values[key]
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	v, ok := variant.Value().(bool)
	if !ok {
		t.Fatalf("key %q value is %T, want bool", key, variant.Value())
	}
	return v
}

func stringVariant(t *testing.T, values map[string]dbus.Variant, key string) string {
	t.Helper()
	variant, ok := values[key]
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	v, ok := variant.Value().(string)
	if !ok {
		t.Fatalf("key %q value is %T, want string", key, variant.Value())
	}
	return v
}
