package toolchain

import (
	"os"
	"path/filepath"
)

// ResolveCompilerPath returns the compiler executable to run.
//
// A non-empty override is used as given, apart from the variant's executable
// suffix. Otherwise the variant's default compiler is searched in the
// directories of searchPath (a PATH-style list) and the first executable
// entry wins.
func ResolveCompilerPath(override string, v *Variant, searchPath string) (string, error) {
	var compiler string
	if override != "" {
		compiler = v.ExecutableName(override)
	} else {
		name := v.ExecutableName(v.DefaultCompiler)
		found, ok := lookupSearchPath(name, searchPath)
		if !ok {
			return "", &Error{
				Kind: KindToolchainNotFound,
				OS:   v.OS,
				Msg:  "default native compiler executable '" + name + "' not found via environment variable PATH",
			}
		}
		compiler = found
	}

	if fi, err := os.Stat(compiler); err != nil || fi.IsDir() || !isExecutable(compiler) {
		subject := "default native compiler '" + compiler + "'"
		if override != "" {
			subject = "compiler path override '" + override + "'"
		}
		return "", &Error{
			Kind: KindInvalidToolchainPath,
			OS:   v.OS,
			Msg:  subject + " does not specify a path to an executable",
			Err:  err,
		}
	}
	return compiler, nil
}

func lookupSearchPath(name, searchPath string) (string, bool) {
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}
