package iorefresh

import (
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/gnames/trialwh/pkg/staging"
	"github.com/gnames/trialwh/pkg/warehouse"
)

func batchOf[T schema.DDLGenerator](models []T) db.Batch {
	var zero T
	return db.Batch{
		Table:   zero.TableName(),
		Columns: schema.Columns(zero),
		Rows:    schema.Rows(models),
	}
}

func stagingBatches(stg *staging.Result) []db.Batch {
	return []db.Batch{
		batchOf(stg.Sponsors),
		batchOf(stg.Locations),
		batchOf(stg.Conditions),
		batchOf(stg.Interventions),
		batchOf(stg.Trials),
	}
}

func warehouseBatches(
	dims *warehouse.Dimensions,
	facts []schema.FactTrial,
) []db.Batch {
	return []db.Batch{
		batchOf(dims.Sponsors),
		batchOf(dims.Locations),
		batchOf(dims.Conditions),
		batchOf(dims.Interventions),
		batchOf(dims.Dates),
		batchOf(facts),
	}
}
