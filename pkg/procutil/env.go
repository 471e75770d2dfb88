package procutil

import (
	"os"
	"strings"
)

// EnvVar is the name of an environment variable.
type EnvVar string

const (
	JAVA                    EnvVar = "JAVA"
	PYTHON                  EnvVar = "PYTHON"
	CLOSURE_COMPILER_JAR    EnvVar = "CLOSURE_COMPILER_JAR"
	CLOSURE_LINTER          EnvVar = "CLOSURE_LINTER"
	CLOSURE_LINTER_FIX      EnvVar = "CLOSURE_LINTER_FIX"
	CLOSURE_TEMPLATES       EnvVar = "CLOSURE_TEMPLATES"
	CLOSURE_STYLESHEETS     EnvVar = "CLOSURE_STYLESHEETS"
	CLOSURE_LIBRARY         EnvVar = "CLOSURE_LIBRARY"
	CLOSURE_GAZELLE_VERBOSE EnvVar = "CLOSURE_GAZELLE_VERBOSE"
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

// LookupEnv returns the value of the variable if it is set and not empty.
func LookupEnv(name EnvVar) (string, bool) {
	val, ok := os.LookupEnv(string(name))
	if !ok || val == "" {
		return "", false
	}
	return val, true
}
