//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#include <stdlib.h>
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

int accessibilityTrusted() {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

int screenCaptureAllowed() {
    if (@available(macOS 11.0, *)) {
        return CGPreflightScreenCaptureAccess() ? 1 : 0;
    }
    return 1;
}

void openPrivacyPane(const char *pane) {
    NSString *url = [NSString stringWithFormat:@"x-apple.systempreferences:com.apple.preference.security?%s", pane];
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:url]];
}
*/
import "C"
import "unsafe"

func check() Status {
	return Status{
		Accessibility:   C.accessibilityTrusted() == 1,
		ScreenRecording: C.screenCaptureAllowed() == 1,
	}
}

func openSettings(pane string) {
	cs := C.CString(pane)
	defer C.free(unsafe.Pointer(cs))
	C.openPrivacyPane(cs)
}
