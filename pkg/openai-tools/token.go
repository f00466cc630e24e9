package openai_tools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const fallbackEncoding = "cl100k_base"

// Per-message overhead of the chat format, see
// https://github.com/openai/openai-cookbook/blob/main/examples/How_to_count_tokens_with_tiktoken.ipynb
const (
	tokensPerMessage = 3
	tokensPerName    = 1
	replyPriming     = 3
)

// CountToken estimates the prompt tokens of messages for model. Models
// unknown to tiktoken are counted with cl100k_base.
func CountToken(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
		}
	}

	count := replyPriming
	for _, message := range messages {
		count += tokensPerMessage
		count += len(tkm.Encode(message.Content, nil, nil))
		count += len(tkm.Encode(message.Role, nil, nil))
		if message.Name != "" {
			count += len(tkm.Encode(message.Name, nil, nil))
			count += tokensPerName
		}
	}
	return count, nil
}
