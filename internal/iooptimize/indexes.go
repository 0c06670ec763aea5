package iooptimize

import (
	"context"

	"github.com/gnames/trialwh/pkg/schema"
)

func (o *optimizer) createIndexes(ctx context.Context) error {
	stmts := schema.FactIndexDDL()
	bar := newProgressBar(len(stmts), "Indexes: ")
	defer bar.Finish()

	for _, q := range stmts {
		if err := o.operator.Exec(ctx, q); err != nil {
			return IndexError(q, err)
		}
		bar.Increment()
	}
	return nil
}
