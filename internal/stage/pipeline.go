package stage

// TablePipeline is the fixed stage order for one table download.
var TablePipeline = []string{
	fetchHTMLStage,
	locateTablesStage,
	selectTableStage,
	extractRowsStage,
	luaFilterStage,
	luaMapStage,
	writeOutputStage,
	writeSidecarStage,
	publishOutputStage,
}
