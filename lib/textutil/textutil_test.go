package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	cases := []struct {
		operation string
		text      string
		want      string
	}{
		{OpUppercase, "hello World", "HELLO WORLD"},
		{OpLowercase, "Hello WORLD", "hello world"},
		{OpWordCount, "  one two   three ", "3"},
		{OpWordCount, "", "0"},
		{OpReverse, "abc", "cba"},
		{OpReverse, "héllo", "olléh"},
		// operation names match case-insensitively
		{"UPPERCASE", "ok", "OK"},
	}
	for _, c := range cases {
		got, err := Transform(c.operation, c.text)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, c.want, got, "%s(%q)", c.operation, c.text)
	}
}

func TestTransformUnknownOperation(t *testing.T) {
	_, err := Transform("rot13", "secret")
	var unknown UnknownOperationError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "rot13", unknown.Operation)
}
