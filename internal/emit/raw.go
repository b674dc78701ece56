package emit

import "strings"

const (
	fenceChar      = '"'
	minFenceLength = 3
)

// FenceLength returns the number of quote characters needed to delimit
// content as a raw string literal: one more than the longest run of quotes
// in content, and never fewer than three.
func FenceLength(content string) int {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] != fenceChar {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return max(minFenceLength, longest+1)
}

// RawStringLiteral writes content as a raw string literal terminated by ";".
// The fence is sized with FenceLength so it cannot occur inside content.
func (e *Emitter) RawStringLiteral(content string) *Emitter {
	return e.RawStringLiteralFenced(FenceLength(content), content)
}

// RawStringLiteralFenced writes content between fences of n quotes (at least
// three). The literal is written at indent zero and the caller's indent is
// restored afterwards.
func (e *Emitter) RawStringLiteralFenced(n int, content string) *Emitter {
	fence := strings.Repeat(string(fenceChar), max(minFenceLength, n))
	e.EnterScope(0)
	e.Append(fence).NewLine()
	e.Append(content).NewLine()
	e.Append(fence).Append(";").NewLine()
	return e.ExitScope()
}
