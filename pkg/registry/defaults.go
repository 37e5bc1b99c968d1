package registry

// =================================
// Built-in constants
// =================================
const (
	EError            Level = 1 << 0
	EWarning          Level = 1 << 1
	EParse            Level = 1 << 2
	ENotice           Level = 1 << 3
	ECoreError        Level = 1 << 4
	ECoreWarning      Level = 1 << 5
	ECompileError     Level = 1 << 6
	ECompileWarning   Level = 1 << 7
	EUserError        Level = 1 << 8
	EUserWarning      Level = 1 << 9
	EUserNotice       Level = 1 << 10
	EStrict           Level = 1 << 11
	ERecoverableError Level = 1 << 12
	EDeprecated       Level = 1 << 13
	EUserDeprecated   Level = 1 << 14
)

// =================================
// Aggregate
// =================================
const (
	EAllName        = "E_ALL"
	EAllDescription = "All errors and warnings, as supported, except of level E_STRICT prior to PHP 5.4.0."
)

// =================================
// Built-in version keys
// =================================
const (
	Version54   = "5.4"
	Version53   = "5.3"
	Version52   = "5.2"
	Version50   = "5.0"
	VersionPre5 = "pre_5"
)

// DefaultConstants is the built-in constant table in declaration order.
var DefaultConstants = []Constant{
	{Name: "E_ERROR", Value: EError, Description: "Fatal run-time errors. These indicate errors that can not be recovered from, such as a memory allocation problem. Execution of the script is halted."},
	{Name: "E_WARNING", Value: EWarning, Description: "Run-time warnings (non-fatal errors). Execution of the script is not halted."},
	{Name: "E_PARSE", Value: EParse, Description: "Compile-time parse errors. Parse errors should only be generated by the parser."},
	{Name: "E_NOTICE", Value: ENotice, Description: "Run-time notices. Indicate that the script encountered something that could indicate an error, but could also happen in the normal course of running a script."},
	{Name: "E_CORE_ERROR", Value: ECoreError, Description: "Fatal errors that occur during PHP's initial startup. This is like an E_ERROR, except it is generated by the core of PHP."},
	{Name: "E_CORE_WARNING", Value: ECoreWarning, Description: "Warnings (non-fatal errors) that occur during PHP's initial startup. This is like an E_WARNING, except it is generated by the core of PHP."},
	{Name: "E_COMPILE_ERROR", Value: ECompileError, Description: "Fatal compile-time errors. This is like an E_ERROR, except it is generated by the Zend Scripting Engine."},
	{Name: "E_COMPILE_WARNING", Value: ECompileWarning, Description: "Compile-time warnings (non-fatal errors). This is like an E_WARNING, except it is generated by the Zend Scripting Engine."},
	{Name: "E_USER_ERROR", Value: EUserError, Description: "User-generated error message. This is like an E_ERROR, except it is generated in PHP code by using the PHP function trigger_error()."},
	{Name: "E_USER_WARNING", Value: EUserWarning, Description: "User-generated warning message. This is like an E_WARNING, except it is generated in PHP code by using the PHP function trigger_error()."},
	{Name: "E_USER_NOTICE", Value: EUserNotice, Description: "User-generated notice message. This is like an E_NOTICE, except it is generated in PHP code by using the PHP function trigger_error()."},
	{Name: "E_STRICT", Value: EStrict, Description: "Enable to have PHP suggest changes to your code which will ensure the best interoperability and forward compatibility of your code."},
	{Name: "E_RECOVERABLE_ERROR", Value: ERecoverableError, Description: "Catchable fatal error. It indicates that a probably dangerous error occurred, but did not leave the Engine in an unstable state. If the error is not caught by a user defined handle (see also set_error_handler()), the application aborts as it was an E_ERROR."},
	{Name: "E_DEPRECATED", Value: EDeprecated, Description: "Run-time notices. Enable this to receive warnings about code that will not work in future versions."},
	{Name: "E_USER_DEPRECATED", Value: EUserDeprecated, Description: "User-generated warning message. This is like an E_DEPRECATED, except it is generated in PHP code by using the PHP function trigger_error()."},
}

// DefaultVersions returns the built-in version table, newest first.
func DefaultVersions() []Version {
	pre5 := []string{
		"E_ERROR", "E_WARNING", "E_PARSE", "E_NOTICE",
		"E_CORE_ERROR", "E_CORE_WARNING", "E_COMPILE_ERROR", "E_COMPILE_WARNING",
		"E_USER_ERROR", "E_USER_WARNING", "E_USER_NOTICE",
	}
	v50 := extend(pre5, "E_STRICT")
	v52 := extend(v50, "E_RECOVERABLE_ERROR")
	v53 := extend(v52, "E_DEPRECATED", "E_USER_DEPRECATED")

	return []Version{
		{Key: Version54, Label: "5.4.* and higher", Constants: v53, EAll: extend(v53)},
		{Key: Version53, Label: "5.3.*", Constants: v53, EAll: without(v53, "E_STRICT")},
		{Key: Version52, Label: "5.2.*", Constants: v52, EAll: without(v52, "E_STRICT")},
		{Key: Version50, Label: "5.0.* - 5.1.*", Constants: v50, EAll: without(v50, "E_STRICT")},
		{Key: VersionPre5, Label: "Pre 5.*", Constants: pre5, EAll: extend(pre5)},
	}
}

// Default returns a registry built from the built-in tables.
func Default() *Registry {
	r, err := New(DefaultConstants, DefaultVersions())
	if err != nil {
		panic("registry.Default: " + err.Error())
	}
	return r
}

func extend(base []string, names ...string) []string {
	out := make([]string, 0, len(base)+len(names))
	out = append(out, base...)
	return append(out, names...)
}

func without(base []string, name string) []string {
	out := make([]string, 0, len(base))
	for _, n := range base {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
