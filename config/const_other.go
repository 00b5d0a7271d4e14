//go:build !linux && !darwin

package config

const (
	_var = "chaterp"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _var + "/.google/credentials.json"
)
