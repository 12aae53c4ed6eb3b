// Package globals holds the process wide state of the cli
package globals

import (
	"github.com/evergales/tinkaros/internals/cmdlog"
	"github.com/evergales/tinkaros/internals/credentials"
	"github.com/evergales/tinkaros/internals/ownhttp"
)

var (
	// GlobalDir is the tinkaros config directory
	GlobalDir string
	// Credentials is nil until the root command initialized it
	Credentials *credentials.Store
	// HTTPClient is used for the manifest, launcher files and mod downloads
	HTTPClient = ownhttp.NewDownloadClient()
	// RegistryClient is shared by the registry api clients
	RegistryClient = ownhttp.NewThrottled(10, 20)
	Logger         = cmdlog.New()
)
