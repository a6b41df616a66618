package model

// Course is the sole managed record: an integer id and a display name.
type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CourseInput is the payload accepted by create and update.
// Name is a pointer so an absent key is distinguishable from an empty string.
type CourseInput struct {
	Name *string `json:"name" form:"name" binding:"required,nonempty,minlen=3"`
}

// DefaultCourses returns the records the collection is seeded with at startup.
func DefaultCourses() []Course {
	return []Course{
		{ID: 1, Name: "course1"},
		{ID: 2, Name: "course2"},
		{ID: 3, Name: "course3"},
	}
}
