package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models in load order.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		&RawTrial{},
		&StgSponsor{},
		&StgLocation{},
		&StgCondition{},
		&StgIntervention{},
		&StagingTrial{},
		&DimSponsor{},
		&DimLocation{},
		&DimCondition{},
		&DimIntervention{},
		&DimDate{},
		&FactTrial{},
		&ETLRun{},
	}
}

// TableNames returns names of all trialwh tables.
func TableNames() []string {
	models := AllModels()
	res := make([]string, len(models))
	for i := range models {
		res[i] = models[i].TableName()
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	models := AllModels()
	dst := make([]any, len(models))
	for i := range models {
		dst[i] = models[i]
	}
	return db.AutoMigrate(dst...)
}
