package pipeline

// Fact-table column names, fixed by the source dataset's header
// convention ("Crime Data from 2020 to Present").
const (
	ColDateOcc     = "DATE OCC"
	ColTimeOcc     = "TIME OCC"
	ColAreaName    = "AREA NAME"
	ColRptDist     = "Rpt Dist No"
	ColCrimeCode   = "Crm Cd"
	ColMocodes     = "Mocodes"
	ColVictDescent = "Vict Descent"
	ColStatus      = "Status"
)

// Appended (resolved) column names. Raw columns are retained as-is.
const (
	OutCrimeClass = "Crm Cd Class"
	OutBureau     = "Bureau"
	OutAuthority  = "Authority Type"
	OutStatusDesc = "Status Desc"
	OutMocodes    = "Mocodes Readable"
	OutDescent    = "Vict Descent Desc"
	OutDateISO    = "Date OCC ISO"
	OutHour       = "Hour OCC"
)

// mocodeSep joins a resolved MO sequence into its single-cell rendering.
// Order matches the input tokens; the raw sequences are also carried on
// the Result for consumers that want them untangled.
const mocodeSep = ", "
