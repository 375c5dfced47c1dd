package exitCodes

const (
	Success       = 0 // every discovered report converted
	ReportsFailed = 1 // at least one report could not be converted
	ConfigError   = 2 // bad flags, config file or missing input root
	OutputFailure = 3 // writing an output document failed and the run was aborted
)
