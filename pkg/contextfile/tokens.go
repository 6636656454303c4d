// File: pkg/contextfile/tokens.go
package contextfile

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// tokenModel selects the tiktoken encoding used for the estimate.
const tokenModel = "gpt-4o"

// EstimateTokens counts the tokens the generated artifact would occupy in
// a model context window, using the tiktoken encoding for tokenModel.
func EstimateTokens(content string) (int, error) {
	encoding, err := tiktoken.EncodingForModel(tokenModel)
	if err != nil {
		return 0, fmt.Errorf("failed to load tiktoken encoding for %s: %w", tokenModel, err)
	}
	return len(encoding.EncodeOrdinary(content)), nil
}
