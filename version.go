package polaris

import (
	"fmt"
	"runtime"
)

// ClientName identifies this SDK in the User-Agent header.
const ClientName = "polaris-go"

// Version is the SDK release version.
const Version = "0.4.0"

// UserAgent returns the client identifier sent with every request:
// "<name>/<version> (<os>/<arch>)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s)", ClientName, Version, runtime.GOOS, runtime.GOARCH)
}
