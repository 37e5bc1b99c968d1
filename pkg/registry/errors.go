package registry

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors 🔎
	ErrUnknownVersion  = errors.New("❌ unknown version")
	ErrUnknownConstant = errors.New("❌ unknown constant")

	// Table errors 📋
	ErrNotPowerOfTwo    = errors.New("❌ constant value is not a power of two")
	ErrDuplicateName    = errors.New("❌ duplicate constant name")
	ErrDuplicateValue   = errors.New("❌ duplicate constant value")
	ErrDuplicateVersion = errors.New("❌ duplicate version key")
	ErrEAllNotSubset    = errors.New("❌ E_ALL constant is not active in version")
	ErrEmptyRegistry    = errors.New("❌ registry has no versions")
)

// ConfigError reports a misconfigured registry or a lookup against a key the
// registry does not know. It is a programming error, not user input.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %v: %q", e.Err, e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(err error, key string) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}
