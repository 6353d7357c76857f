package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Operations accepted by Transform.
const (
	OpUppercase = "uppercase"
	OpLowercase = "lowercase"
	OpWordCount = "word_count"
	OpReverse   = "reverse"
)

type UnknownOperationError struct {
	Operation string
}

func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Operation)
}

// Transform applies one of the simple text operations. Operation names
// are matched case-insensitively.
func Transform(operation, text string) (string, error) {
	switch strings.ToLower(operation) {
	case OpUppercase:
		return strings.ToUpper(text), nil
	case OpLowercase:
		return strings.ToLower(text), nil
	case OpWordCount:
		return strconv.Itoa(len(strings.Fields(text))), nil
	case OpReverse:
		runes := []rune(text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	default:
		return "", UnknownOperationError{Operation: operation}
	}
}
