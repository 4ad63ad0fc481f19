package tracefile

import "strings"

// splitTokens splits one directive line into its tokens. Tokens are
// separated by runs of spaces; a token starting with a double quote
// extends, spaces included, to the next double quote and is emitted with
// the quotes stripped. There is no escaping of embedded quotes.
func splitTokens(line string) ([]string, error) {
	str := strings.TrimSpace(line)

	var tokens []string
	for from := 0; from < len(str); {
		var to int
		if str[from] == '"' {
			from++
			to = strings.IndexByte(str[from:], '"')
			if to < 0 {
				return nil, errUnterminatedQuote
			}
			to += from
		} else {
			to = strings.IndexByte(str[from+1:], ' ')
			if to < 0 {
				to = len(str)
			} else {
				to += from + 1
			}
		}

		tokens = append(tokens, str[from:to])
		from = to + 1

		for from < len(str) && str[from] == ' ' {
			from++
		}
	}

	return tokens, nil
}
