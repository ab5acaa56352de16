package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Asset errors
var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrDuplicateAssetCode  = errors.New("asset code already exists")
	ErrInvalidAssetType    = errors.New("invalid asset type")
	ErrAssetDecommissioned = errors.New("asset is already decommissioned")
	ErrInvalidAssetValues  = errors.New("invalid asset financial values")
)

// Depreciation errors
var (
	ErrInvalidPeriodFormat = errors.New("invalid period format, expected YYYY-MM")
	ErrPeriodAlreadyRun    = errors.New("depreciation already executed for period")
	ErrRunInProgress       = errors.New("a depreciation run is already in progress")
	ErrRunIncomplete       = errors.New("depreciation run did not complete")
)

// Maintenance errors
var (
	ErrMaintenanceNotFound    = errors.New("maintenance record not found")
	ErrInvalidMaintenanceKind = errors.New("invalid maintenance kind")
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
