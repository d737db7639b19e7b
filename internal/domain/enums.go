package domain

// Department identifies one planning department.
type Department string

const (
	DeptPM    Department = "PM"
	DeptMED   Department = "MED"
	DeptHD    Department = "HD"
	DeptMFG   Department = "MFG"
	DeptBUILD Department = "BUILD"
	DeptPRG   Department = "PRG"
)

// ValidDepartments is the canonical set of accepted department codes.
var ValidDepartments = map[Department]bool{
	DeptPM: true, DeptMED: true, DeptHD: true,
	DeptMFG: true, DeptBUILD: true, DeptPRG: true,
}

// SplitDepartments are the departments that track an internal/external
// hour split on assignments.
var SplitDepartments = map[Department]bool{
	DeptBUILD: true,
	DeptPRG:   true,
}

// Stage is a department-specific work stage tag. The empty string means
// no stage. Priority ordering is not carried by the tag itself; it comes
// from the per-department vocabulary in the configuration.
type Stage string

const (
	StageSwitchLayoutRevision Stage = "SWITCH_LAYOUT_REVISION"
	StageControlsDesign       Stage = "CONTROLS_DESIGN"
	StageConcept              Stage = "CONCEPT"
	StageDetailDesign         Stage = "DETAIL_DESIGN"
	StageCabinetsFrames       Stage = "CABINETS_FRAMES"
	StageOverallAssembly      Stage = "OVERALL_ASSEMBLY"
	StageFineTuning           Stage = "FINE_TUNING"
	StageCommissioning        Stage = "COMMISSIONING"
	StageOffline              Stage = "OFFLINE"
	StageOnline               Stage = "ONLINE"
	StageDebug                Stage = "DEBUG"
	StageRelease              Stage = "RELEASE"
	StageRedLines             Stage = "RED_LINES"
	StageSupport              Stage = "SUPPORT"
	StageRobotSimulation      Stage = "ROBOT_SIMULATION"
	StageStandardsRev         Stage = "STANDARDS_REV_PROGRAMING_CONCEPT"
)

// Facility is a project location code.
type Facility string

const (
	FacilityAL Facility = "AL"
	FacilityMI Facility = "MI"
	FacilityMX Facility = "MX"
)

// UtilizationTier classifies a utilization percentage for rendering.
type UtilizationTier string

const (
	TierLow      UtilizationTier = "low"
	TierModerate UtilizationTier = "moderate"
	TierHigh     UtilizationTier = "high"
	TierCritical UtilizationTier = "critical"
)
