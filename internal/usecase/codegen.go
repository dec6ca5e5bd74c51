package usecase

import (
	"fmt"
	"math/rand"
)

const (
	codeSuffixMin = 1_000_000
	codeSuffixMax = 9_999_999
)

// CodeGenerator mints coupon codes: the enterprise code followed by a uniform
// 7-digit numeric suffix. It does not guarantee uniqueness; callers must check
// the persisted set and regenerate on collision.
type CodeGenerator struct {
	intN func(n int) int
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{intN: rand.Intn}
}

func (g *CodeGenerator) Generate(enterpriseCode string) string {
	suffix := codeSuffixMin + g.intN(codeSuffixMax-codeSuffixMin+1)
	return fmt.Sprintf("%s%d", enterpriseCode, suffix)
}
