//go:build !darwin

package permissions

func check() Status {
	return Status{Accessibility: true, ScreenRecording: true}
}

func openSettings(string) {}
