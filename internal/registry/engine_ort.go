//go:build ORT

package registry

import (
	"github.com/chriscorrea/babel/internal/llm/local"
	"github.com/chriscorrea/babel/internal/llm/local/ort"
)

func init() {
	// with no --engine the first non-mock engine is used, so this becomes the default
	local.RegisterEngine(ort.NewEngine())
}
