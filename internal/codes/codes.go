package codes

// ErrorCodes maps frontend exit codes to their descriptions
var ErrorCodes = map[int]string{
	0:  "Success",
	1:  "Compilation errors",
	2:  "Cannot open input file",
	3:  "Invalid arguments",
	4:  "Cannot write output file",
	5:  "Serialization failed",
	70: "Internal compiler error",
	71: "Compiler terminated by signal",
}

// IsSuccess returns true if the exit code indicates successful compilation
func IsSuccess(code int) bool {
	return code == 0
}

// IsCrash returns true if the exit code indicates the frontend died
// abnormally rather than exiting with diagnostics
func IsCrash(code int) bool {
	return code == 70 || code == 71 || code < 0
}

// GetErrorMessage returns the error message for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}
