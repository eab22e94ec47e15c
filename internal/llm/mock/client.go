package mock

import (
	"context"

	"github.com/chriscorrea/babel/internal/llm/common"
)

// Translation is the canned reply returned by the mock transport
const Translation = "This is a simple translation test."

// Client implements the common.LLM interface for mock testing
type Client struct{}

var _ common.LLM = (*Client)(nil)

// Generate implements common.LLM interface, returns a mock response
func (c *Client) Generate(ctx context.Context, messages []common.Message, modelName string, options ...interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", common.NewError(common.CategoryTransport, "mock request cancelled", err)
	}
	return Translation, nil
}
