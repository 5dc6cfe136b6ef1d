package chat

import (
	"strings"

	"github.com/polychat/polychat/api"
)

const fence = "```"

// ExtractCode returns the lines of the first closed fenced code block in
// response, without the language tag line. Only the first block is
// considered.
func ExtractCode(response string) ([]string, error) {
	parts := strings.Split(response, fence)
	if len(parts) < 3 {
		return nil, api.NewCodeBlockNotFoundError("no closed " + fence + " block in response")
	}

	lines := strings.Split(parts[1], "\n")
	// drop the language tag line
	code := lines[1:]
	// the block ends with a newline before the closing fence
	if n := len(code); n > 0 && code[n-1] == "" {
		code = code[:n-1]
	}
	return code, nil
}
