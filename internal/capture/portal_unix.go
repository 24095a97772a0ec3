//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/retouch/internal/imageio"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalMethod    = "org.freedesktop.portal.Screenshot.Screenshot"
	portalResponse  = "org.freedesktop.portal.Request.Response"
	portalRequestIf = "org.freedesktop.portal.Request"
)

var portalHandleToken = func() string {
	return fmt.Sprintf("retouch_%d", time.Now().UnixNano())
}

func portalScreenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	var handle dbus.ObjectPath
	obj := conn.Object(portalDest, portalPath)
	call := obj.CallWithContext(ctx, portalMethod, 0, "", portalOptions(opts))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(handle),
		dbus.WithMatchInterface(portalRequestIf),
		dbus.WithMatchMember("Response"),
	}
	if err := conn.AddMatchSignalContext(ctx, match...); err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.RemoveMatchSignal(match...)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("portal screenshot: %w", ctx.Err())
		case sig, ok := <-sigc:
			if !ok {
				return nil, errors.New("portal screenshot: bus closed")
			}
			if sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			path, err := parseResponse(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadAndRemove(path)
		}
	}
}

func portalOptions(opts Options) map[string]dbus.Variant {
	cursor := "hidden"
	if opts.IncludeCursor {
		cursor = "embedded"
	}
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"interactive":  dbus.MakeVariant(opts.Interactive),
		"modal":        dbus.MakeVariant(opts.Interactive),
		"cursor_mode":  dbus.MakeVariant(cursor),
	}
}

// parseResponse extracts the file path from a Request.Response signal body:
// a uint32 status (0 ok, 1 cancelled, 2 failed) and a results dict.
func parseResponse(body []any) (string, error) {
	if len(body) < 2 {
		return "", errors.New("portal screenshot: malformed response")
	}
	status, _ := body[0].(uint32)
	switch status {
	case 0:
	case 1:
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("portal screenshot failed with status %d", status)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", errors.New("portal screenshot: malformed results")
	}
	v, ok := results["uri"]
	if !ok {
		return "", errors.New("portal screenshot: response missing image uri")
	}
	raw, ok := v.Value().(string)
	if !ok {
		return "", errors.New("portal screenshot: uri is not a string")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("portal screenshot uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot uri %q is not a local file", raw)
	}
	return u.Path, nil
}

// loadAndRemove decodes the portal's temporary file and deletes it.
func loadAndRemove(path string) (*image.RGBA, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}()
	img, err := imageio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	return img.RGBA, nil
}
