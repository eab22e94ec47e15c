package app

import (
	"github.com/chriscorrea/babel/internal/llm/common"
)

// process exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// categoryExitCodes maps each failure category to its exit code
// every category currently exits with 1; the table keeps the mapping in one place
var categoryExitCodes = map[common.Category]int{
	common.CategoryConfig:      ExitFailure,
	common.CategoryModelLoad:   ExitFailure,
	common.CategoryPromptBuild: ExitFailure,
	common.CategoryTransport:   ExitFailure,
	common.CategoryHTTPStatus:  ExitFailure,
	common.CategoryProtocol:    ExitFailure,
	common.CategorySchema:      ExitFailure,
	common.CategoryEmpty:       ExitFailure,
}

var categoryHeadlines = map[common.Category]string{
	common.CategoryConfig:      "invalid configuration",
	common.CategoryModelLoad:   "model load failed",
	common.CategoryPromptBuild: "prompt construction failed",
	common.CategoryTransport:   "request failed",
	common.CategoryHTTPStatus:  "server returned an error",
	common.CategoryProtocol:    "could not parse the response",
	common.CategorySchema:      "unexpected response format",
	common.CategoryEmpty:       "empty response",
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if category, ok := common.CategoryOf(err); ok {
		if code, ok := categoryExitCodes[category]; ok {
			return code
		}
	}
	return ExitFailure
}

// Describe returns a short headline naming the kind of failure
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if category, ok := common.CategoryOf(err); ok {
		if headline, ok := categoryHeadlines[category]; ok {
			return headline
		}
	}
	return "translation failed"
}
