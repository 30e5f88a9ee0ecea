package db

// Artifact step constants for known artifact types.
const (
	StepSlotMap       = "slot_map"
	StepMergedCourses = "merged_courses"
)

// Artifact category constants.
const (
	CategoryFetch = "fetch"
	CategoryMerge = "merge"
)
