package config

const (
	_etc = "/usr/local/etc/com.github.ydg.chaterp"
	_var = "/usr/local/var/com.github.ydg.chaterp"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
)
