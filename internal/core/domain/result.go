package domain

import "errors"

// ResultCode is the stable numeric outcome of a public operation.
type ResultCode int

// Result codes. Negative values identify the error kind.
const (
	CodeSuccess       ResultCode = 0
	CodeInvalidHandle ResultCode = -1
	CodeScanFailed    ResultCode = -2
	CodePrewarmFailed ResultCode = -3
	CodeNotAvailable  ResultCode = -4
	CodeGameNotFound  ResultCode = -5
	CodeInvalidParam  ResultCode = -6
	CodeOutOfMemory   ResultCode = -7
	CodeUnknown       ResultCode = -99
)

var codeSentinels = []struct {
	code ResultCode
	err  error
}{
	{CodeInvalidHandle, ErrInvalidHandle},
	{CodeScanFailed, ErrScanFailed},
	{CodePrewarmFailed, ErrPrewarmFailed},
	{CodeNotAvailable, ErrNotAvailable},
	{CodeGameNotFound, ErrGameNotFound},
	{CodeInvalidParam, ErrInvalidParam},
	{CodeOutOfMemory, ErrOutOfMemory},
	{CodeUnknown, ErrUnknown},
}

// CodeOf maps an error chain to its result code.
// A nil error is CodeSuccess; anything unrecognized is CodeUnknown.
func CodeOf(err error) ResultCode {
	if err == nil {
		return CodeSuccess
	}
	for _, s := range codeSentinels {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return CodeUnknown
}

// String returns the symbolic name of the code.
func (c ResultCode) String() string {
	switch c {
	case CodeSuccess:
		return "SUCCESS"
	case CodeInvalidHandle:
		return "INVALID_HANDLE"
	case CodeScanFailed:
		return "SCAN_FAILED"
	case CodePrewarmFailed:
		return "PREWARM_FAILED"
	case CodeNotAvailable:
		return "NOT_AVAILABLE"
	case CodeGameNotFound:
		return "GAME_NOT_FOUND"
	case CodeInvalidParam:
		return "INVALID_PARAM"
	case CodeOutOfMemory:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}
