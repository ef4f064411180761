// Package schemes provides the URL scheme table used by urlpattern's
// constructor-string and init-record processing: the six "special" schemes
// that get authority-slash and default-port handling.
package schemes
