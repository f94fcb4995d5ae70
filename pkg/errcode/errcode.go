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
	WalkDirError
	SourceDirError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBMissingTablesError
	DBUnknownDriverError

	// Input errors
	MalformedInputError

	// Store write errors
	StoreWriteError
	StoreLookupError

	// Load errors
	LoadCancelledError
)
