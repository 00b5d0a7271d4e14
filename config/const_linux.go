package config

const (
	_etc = "/usr/local/etc/chaterp"
	_var = "/usr/local/var/chaterp"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
)
