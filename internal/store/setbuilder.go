package store

import (
	"fmt"
	"strings"
)

// setBuilder accumulates SET clauses for partial updates with positional
// placeholders.
type setBuilder struct {
	sets []string
	args []any
}

func newSetBuilder() *setBuilder {
	return &setBuilder{}
}

func (b *setBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.sets) == 0
}

func (b *setBuilder) clause() string {
	return strings.Join(b.sets, ", ")
}

// next is the placeholder index for the first argument appended after args.
func (b *setBuilder) next() int {
	return len(b.args) + 1
}
