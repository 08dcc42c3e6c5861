// Package core contains the client configuration, shared contracts, and
// error envelope used by the transport and the resource clients. Higher
// level packages depend on core; core must not depend on any other package
// in this module.
package core
