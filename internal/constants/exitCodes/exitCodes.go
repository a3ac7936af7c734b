package exitcodes

// Codes follow curl's so scripts wrapping the smoke test keep working.
const (
	Success           = 0
	Failure           = 1
	UrlMalformed      = 3
	CouldNotResolve   = 6
	CouldNotConnect   = 7
	ReadError         = 26
	OperationTimedOut = 28
)
