package meta

import "sync/atomic"

// Service identifies the running binary in logs, spans and request metadata.
type Service struct {
	Name    string
	Version string
}

//nolint:gochecknoglobals // set once at startup
var service atomic.Pointer[Service]

// SetServiceInfo records the service identity. Only the first call has an effect.
func SetServiceInfo(name, version string) {
	service.CompareAndSwap(nil, &Service{Name: name, Version: version})
}

// CurrentService returns the identity recorded by SetServiceInfo,
// or the zero Service before it is called.
func CurrentService() Service {
	if s := service.Load(); s != nil {
		return *s
	}
	return Service{}
}
