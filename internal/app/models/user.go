package models

// User defines the user model based on the 'users' table
type User struct {
	ID       string  `json:"id" db:"user_id" example:"AD001"`          // Unique identifier for the user
	Name     string  `json:"name" db:"user_name" example:"Ada Nelson"` // Display name
	Role     Role    `json:"role" db:"role" example:"student"`         // User's role, fixed at creation
	Email    *string `json:"email,omitempty" db:"email"`               // Email address (nullable)
	HashPass string  `json:"-" db:"hash_pass"`                         // bcrypt hash (excluded from JSON)
}

// Student defines the student model based on the 'student' table.
// Student.ID shares its key with users.user_id and must reference a
// user whose role is student.
type Student struct {
	ID       string  `json:"id" db:"stud_id"`
	Year     int     `json:"year" db:"year"`
	CourseID *string `json:"courseId,omitempty" db:"course_id"` // Nullable until enrolled
	User     *User   `json:"user,omitempty"`                    // Relation, no db tag
	Course   *Course `json:"course,omitempty"`                  // Relation, no db tag
}
