// SPDX-License-Identifier: MPL-2.0

package detect

// Outcome is the classified verdict of a detector run. The set is closed:
// Classify maps every possible exit status onto exactly one of these.
type Outcome int

const (
	// Success means the detector found exactly one function and wrote its
	// manifest.
	Success Outcome = iota
	// NoFunctionsFound means the project contains zero deployable
	// functions (exit code 1).
	NoFunctionsFound
	// MultipleFunctionsFound means the project contains more than one
	// function, which is unsupported (exit code 2).
	MultipleFunctionsFound
	// InternalError means the detector failed on one of its own reserved
	// error codes (3 through 6); the code is surfaced verbatim.
	InternalError
	// UnexpectedExit covers every other status, including termination
	// without an exit code.
	UnexpectedExit
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NoFunctionsFound:
		return "no functions found"
	case MultipleFunctionsFound:
		return "multiple functions found"
	case InternalError:
		return "detector internal error"
	case UnexpectedExit:
		return "unexpected detector exit"
	default:
		return "unknown outcome"
	}
}

// Classify maps a detector exit status to its Outcome. The mapping is
// total: any code outside the contract, including the -1 that stands for
// termination without an exit code, classifies as UnexpectedExit.
func Classify(code int) Outcome {
	switch {
	case code == 0:
		return Success
	case code == 1:
		return NoFunctionsFound
	case code == 2:
		return MultipleFunctionsFound
	case code >= 3 && code <= 6:
		return InternalError
	default:
		return UnexpectedExit
	}
}
