package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	ConfigTemplateError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBUnknownDriverError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBExecError
	DBTransactionError
	DBWriteError
	DBSelectError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaTablesExistError

	// Snapshot errors
	SnapshotReadError
	SnapshotDecodeError
	SnapshotS3Error

	// Refresh errors
	RefreshReadRawError
	RefreshStagingLoadError
	RefreshWarehouseLoadError
	RefreshAuditError

	// Quality errors
	QualityTableError

	// Metrics errors
	MetricsRegisterError
	MetricsPushError

	// Optimizer errors
	OptimizerIndexError
	OptimizerViewCreationError
	OptimizerVacuumError
)
