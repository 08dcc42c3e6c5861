package transport

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-openfinance/core"
)

func remoteError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.ClientErrorRemote)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func remoteWrapError(source error, message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.ClientErrorRemote)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
