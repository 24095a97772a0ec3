// Package platform sends desktop notifications through whatever the host
// offers.
package platform

// AppName is reported to the notification server.
const AppName = "retouch"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown with the notification where supported.
	IconPath string
	// TimeoutMS is how long the notification stays up; zero uses a default.
	TimeoutMS int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMS <= 0 {
		return 5000
	}
	return o.TimeoutMS
}
